package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey  contextKey = "userID"
	adminIDKey contextKey = "adminID"
)

const (
	msgMissingUserID  = "отсутствует заголовок X-User-ID"
	msgInvalidUserID  = "некорректный заголовок X-User-ID"
	msgMissingAdminID = "отсутствует заголовок X-Admin-ID"
	msgInvalidAdminID = "некорректный заголовок X-Admin-ID"
)

// Auth проверяет наличие заголовка X-User-ID и кладет ID клиента в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User-ID")
		if header == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminAuth проверяет наличие заголовка X-Admin-ID и кладет ID оператора в контекст
func AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-Admin-ID")
		if header == "" {
			handlers.RespondUnauthorized(w, msgMissingAdminID)
			return
		}

		adminID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || adminID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidAdminID)
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthOrAdmin пропускает запрос либо с заголовком X-Admin-ID, либо с X-User-ID.
// При наличии обоих приоритет у X-Admin-ID.
func AuthOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if header := r.Header.Get("X-Admin-ID"); header != "" {
			adminID, err := strconv.ParseInt(header, 10, 64)
			if err != nil || adminID <= 0 {
				handlers.RespondUnauthorized(w, msgInvalidAdminID)
				return
			}
			ctx := context.WithValue(r.Context(), adminIDKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		Auth(next).ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID клиента из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetAdminID возвращает ID оператора из контекста запроса
func GetAdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}
