package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
)

// TokenVerifier checks a bearer token of the required type.
type TokenVerifier interface {
	DecodeAndVerify(token string, required auth.TokenType) (*auth.Identity, error)
}

type identityKey struct{}

// IdentityFromContext returns the identity stored by RequireToken.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*auth.Identity)
	return id, ok
}

// RequireToken only lets requests through that carry a valid bearer token
// of type typ. Every failure is answered with the same 401 body; the
// precise cause is logged at debug level.
func RequireToken(verifier TokenVerifier, typ auth.TokenType, logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get(common.AuthorizationHeader))
			if !ok {
				logger.Debug(r.Context(), "missing bearer token", "path", r.URL.Path)
				writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			id, err := verifier.DecodeAndVerify(token, typ)
			if err != nil {
				logger.Debug(r.Context(), "token rejected", "path", r.URL.Path, "required", string(typ), "reason", err.Error())
				writeMessage(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	if len(value) < len(common.BearerPrefix) || !strings.EqualFold(value[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(value[len(common.BearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
