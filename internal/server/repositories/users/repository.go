// Package users implements the credential store: username → password hash
// records with a uniqueness guarantee on username.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository persists user records.
//
// Create fills in ID and CreatedAt and returns common.ErrorAlreadyExists
// when the username is taken. GetUserByLogin returns common.ErrorNotFound
// when no record matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
