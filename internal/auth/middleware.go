package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/kderen/bugtrail/internal/models"
	pkghttp "github.com/kderen/bugtrail/pkg/http"
)

// BearerPrefix is the expected Authorization header scheme
const BearerPrefix = "Bearer "

// Principal is the authenticated identity attached to a request. It is
// built fresh from a verified token on every request and never persisted.
type Principal struct {
	Email       string
	Authorities []string
}

// contextKey is a custom type for context keys
type contextKey string

const principalContextKey contextKey = "principal"

// Authenticator verifies the bearer token on each request and installs the
// resulting Principal into the request context. It never writes an error
// response itself: an invalid or expired token degrades the request to
// anonymous and the authorization middleware downstream produces the
// user-visible 401/403. Authentication failures and authorization failures
// therefore surface through the same path.
func Authenticator(codec *TokenCodec) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS pre-flight bypass
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, BearerPrefix) {
				// No credential presented; proceed anonymously
				next.ServeHTTP(w, r)
				return
			}

			tokenString := authHeader[len(BearerPrefix):]

			claims, err := codec.Verify(tokenString)
			if err != nil {
				// Forged or malformed token. Strip any principal and let
				// downstream authorization reject the request.
				next.ServeHTTP(w, r.WithContext(clearPrincipal(r.Context())))
				return
			}

			if claims.Subject != "" && !codec.IsExpired(claims) && PrincipalFromContext(r.Context()) == nil {
				principal := &Principal{
					Email:       claims.Subject,
					Authorities: claims.Authorities,
				}
				next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
				return
			}

			next.ServeHTTP(w, r.WithContext(clearPrincipal(r.Context())))
		})
	}
}

// RequireAuthentication rejects requests that carry no Principal. Place it
// after Authenticator on protected routes.
func RequireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFromContext(r.Context()) == nil {
			pkghttp.WriteUnauthorized(w, "You need to log in to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuthority enforces that the request's Principal carries the given
// authority string
func RequireAuthority(authority string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				pkghttp.WriteUnauthorized(w, "You need to log in to access this resource")
				return
			}

			if !models.HasAuthority(principal.Authorities, authority) {
				pkghttp.WriteForbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFromContext extracts the request's Principal, nil if anonymous
func PrincipalFromContext(ctx context.Context) *Principal {
	principal, ok := ctx.Value(principalContextKey).(*Principal)
	if !ok {
		return nil
	}
	return principal
}

// ContextWithPrincipal installs a Principal into ctx. Exposed for handler
// tests that exercise protected endpoints directly.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// clearPrincipal shadows any previously installed principal so downstream
// handlers observe an anonymous request.
func clearPrincipal(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalContextKey, (*Principal)(nil))
}
