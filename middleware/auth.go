package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/hackathon-system/models"
)

type contextKey string

const userContextKey contextKey = "user"

// Названия JWT claims, которые выставляет auth handler при логине.
const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
	jwtClaimName   = "name"
)

// Authenticator проверяет Bearer-токены и кладёт claims в контекст запроса.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeAuthError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		ctx, ok := a.authenticateHeader(w, r, header)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticateOptional кладёт claims в контекст, если Bearer-токен передан,
// и пропускает запрос анонимно без заголовка. Предъявленный невалидный
// токен отклоняется как обычно.
func (a *Authenticator) AuthenticateOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, ok := a.authenticateHeader(w, r, header)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticateHeader разбирает Bearer-заголовок; при ошибке пишет 401
// и возвращает ok=false.
func (a *Authenticator) authenticateHeader(w http.ResponseWriter, r *http.Request, header string) (context.Context, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		writeAuthError(w, http.StatusUnauthorized, "Authorization header must be in format 'Bearer <token>'")
		return nil, false
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}

	return context.WithValue(r.Context(), userContextKey, claims), true
}

// RequireRole пропускает запрос только для перечисленных ролей.
// Должен стоять после Authenticate.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := GetPrincipalFromContext(r.Context())
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			for _, role := range roles {
				if role == principal.Role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeAuthError(w, http.StatusForbidden, "Insufficient permissions")
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"success":false,"message":%q}`, message)
}
