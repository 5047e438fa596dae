package middleware

import (
	"Valtify/internal/model"
	"Valtify/internal/service"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type ctxKey int

const accountKey ctxKey = iota

// Authenticator проверяет токен сессии и возвращает владельца.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Account, error)
}

// RequireAuth пропускает запрос дальше только с действительным Bearer-токеном.
// Учётная запись кладётся в контекст запроса.
func RequireAuth(a Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="valtify"`)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			account, err := a.Authenticate(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, service.ErrUnauthorized):
				w.Header().Set("WWW-Authenticate", `Bearer realm="valtify", error="invalid_token"`)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			case errors.Is(err, service.ErrUnavailable):
				w.Header().Set("Retry-After", "1")
				writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
				return
			default:
				log.Errorw("authenticate failed", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "internal error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), account)))
		})
	}
}

// BearerToken извлекает токен из заголовка Authorization. Схема регистронезависима.
func BearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func WithAccount(ctx context.Context, a *model.Account) context.Context {
	return context.WithValue(ctx, accountKey, a)
}

// AccountFromContext возвращает учётную запись, положенную RequireAuth.
func AccountFromContext(ctx context.Context) (*model.Account, bool) {
	a, ok := ctx.Value(accountKey).(*model.Account)
	return a, ok && a != nil
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
