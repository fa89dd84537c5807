package middleware

import (
	"context"
	"net/http"

	"wheel_backend/pkg/token"
)

const adminTokenCookie = "admin_token"

type ctxKey int

const adminCtxKey ctxKey = iota

// AdminAuth проверяет access токен администратора из cookie
// и кладёт имя администратора в контекст запроса
func AdminAuth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(adminTokenCookie)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := token.VerifyToken(c.Value, secretKey)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), adminCtxKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext возвращает имя администратора из контекста
func AdminFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(adminCtxKey).(string)
	return username, ok
}
