// Package auth issues and verifies the JWTs handed out by the server and
// hashes user passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// UserClaims is the fixed set of application claims carried by every token.
type UserClaims struct {
	Username string `json:"username"`
}

// Claims is the full token payload. Subject holds the user id as a string.
type Claims struct {
	jwt.RegisteredClaims
	UserClaims
	Type TokenType `json:"type"`
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	Subject string
	Claims  UserClaims
}

// TokenConfig configures a TokenManager.
type TokenConfig struct {
	SecretKey  []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// TokenManager signs and verifies HS256 tokens. It is safe for concurrent use.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
}

func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if len(cfg.SecretKey) == 0 {
		return nil, errors.New("empty secret key")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token TTLs must be positive")
	}
	if cfg.RefreshTTL <= cfg.AccessTTL {
		return nil, errors.New("refresh TTL must exceed access TTL")
	}

	secret := make([]byte, len(cfg.SecretKey))
	copy(secret, cfg.SecretKey)

	return &TokenManager{
		secret:     secret,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		issuer:     cfg.Issuer,
		now:        time.Now,
	}, nil
}

// WithClock returns a copy of m reading time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	c := *m
	c.now = now
	return &c
}

func (m *TokenManager) IssueAccessToken(subject string, claims UserClaims) (string, error) {
	return m.issue(subject, claims, TokenTypeAccess, m.accessTTL)
}

func (m *TokenManager) IssueRefreshToken(subject string, claims UserClaims) (string, error) {
	return m.issue(subject, claims, TokenTypeRefresh, m.refreshTTL)
}

func (m *TokenManager) issue(subject string, claims UserClaims, typ TokenType, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("empty subject")
	}

	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserClaims: claims,
		Type:       typ,
	})

	s, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// DecodeAndVerify checks the signature, the token type and the expiry of
// tokenString and returns the identity it carries. Every failure wraps
// common.ErrorUnauthorized; the specific cause is one of
// common.ErrInvalidSignature, common.ErrWrongTokenType,
// common.ErrTokenExpired or common.ErrInvalidToken.
func (m *TokenManager) DecodeAndVerify(tokenString string, required TokenType) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
		// non-zero padding bits in the last base64 character are rejected
		jwt.WithStrictDecoding(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		default:
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
		}
	}

	if claims.Type != required {
		return nil, common.ErrWrongTokenType
	}
	if claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return &Identity{Subject: claims.Subject, Claims: claims.UserClaims}, nil
}
