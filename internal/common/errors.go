// Package common defines shared constants and sentinel errors used across
// the gophauth server and client. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorMissingField       = errors.New("missing field")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorUnauthorized       = errors.New("unauthorized")

	// Token verification failures. Each one also matches ErrorUnauthorized.
	ErrInvalidToken     = fmt.Errorf("%w: invalid token", ErrorUnauthorized)
	ErrInvalidSignature = fmt.Errorf("%w: invalid signature", ErrorUnauthorized)
	ErrWrongTokenType   = fmt.Errorf("%w: wrong token type", ErrorUnauthorized)
	ErrTokenExpired     = fmt.Errorf("%w: token expired", ErrorUnauthorized)
)
