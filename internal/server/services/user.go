// Package services contains server-side business logic. UserService
// handles registration, login and minting access tokens from refresh
// tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// TokenPair bundles a short-lived access token and a longer-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuer mints signed tokens for a subject.
type TokenIssuer interface {
	IssueAccessToken(subject string, claims auth.UserClaims) (string, error)
	IssueRefreshToken(subject string, claims auth.UserClaims) (string, error)
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a token pair
// - Refresh: mint a new access token from a verified refresh identity
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenIssuer
	dummyHash   string
}

// NewUserService constructs a UserService. It fails if the hasher cannot
// produce the dummy hash used to equalize login timing for unknown users.
func NewUserService(m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens TokenIssuer) (*UserService, error) {
	dummy, err := hasher.Hash("gophauth-no-such-user")
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &UserService{repomanager: m, hasher: hasher, tokens: tokens, dummyHash: dummy}, nil
}

// Register creates a user with a bcrypt hash of password. A taken username
// yields common.ErrorAlreadyExists, an empty field common.ErrorMissingField.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, common.ErrorMissingField
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	var created *models.User
	err = s.repomanager.InTx(ctx, func(ctx context.Context, repo users.Repository) error {
		_, err := repo.GetUserByLogin(ctx, username)
		switch {
		case err == nil:
			return common.ErrorAlreadyExists
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		created, err = repo.Create(ctx, &models.User{UserName: username, PasswordHash: hash})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("%w: error creating user: %v", common.ErrorInternal, err)
	}

	return created, nil
}

// Login verifies the credentials and, on success, returns a new TokenPair.
// Unknown users and wrong passwords both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	if username == "" || password == "" {
		return nil, common.ErrorMissingField
	}

	user, err := s.repomanager.Users().GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, fmt.Errorf("%w: error loading user: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	subject := strconv.FormatInt(user.ID, 10)
	claims := auth.UserClaims{Username: user.UserName}

	access, err := s.tokens.IssueAccessToken(subject, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	refresh, err := s.tokens.IssueRefreshToken(subject, claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh mints a new access token for the identity carried by an already
// verified refresh token. The username comes from the token itself, not
// from the store, and the refresh token is not rotated.
func (s *UserService) Refresh(_ context.Context, identity *auth.Identity) (string, error) {
	if identity == nil || identity.Subject == "" {
		return "", common.ErrorUnauthorized
	}
	access, err := s.tokens.IssueAccessToken(identity.Subject, identity.Claims)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return access, nil
}
