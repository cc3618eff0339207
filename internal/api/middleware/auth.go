package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SlotScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SlotScheduler/internal/auth"
	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

const (
	headerAuthToken     = "x-auth-token"
	headerAuthorization = "Authorization"

	msgNoToken      = "токен авторизации не передан"
	msgInvalidToken = "некорректный токен авторизации"
	msgAdminOnly    = "действие доступно только администратору"
)

type viewerKey struct{}

// Auth проверяет JWT и кладёт личность пользователя в контекст.
// Токен берётся из x-auth-token или Authorization: Bearer.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(headerAuthToken)
			if raw == "" {
				raw = strings.TrimPrefix(r.Header.Get(headerAuthorization), "Bearer ")
			}
			if raw == "" {
				handlers.RespondUnauthorized(w, msgNoToken)
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				handlers.RespondBadRequest(w, msgInvalidToken)
				return
			}

			viewer := domain.Viewer{UserID: claims.UserID, IsAdmin: claims.Admin}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
		})
	}
}

// RequireAdmin пропускает только администраторов, ставится после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := GetViewer(r.Context())
		if !ok || !viewer.IsAdmin {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithViewer кладёт личность пользователя в контекст
func WithViewer(ctx context.Context, viewer domain.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// GetViewer достаёт личность пользователя из контекста
func GetViewer(ctx context.Context) (domain.Viewer, bool) {
	viewer, ok := ctx.Value(viewerKey{}).(domain.Viewer)
	return viewer, ok
}
