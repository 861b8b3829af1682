// token.go — аутентификация по токену сессии.
// Клиент передаёт заголовок X-Token, в Redis по ключу auth_<token>
// лежит идентификатор пользователя.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	apierrors "github.com/bigkaa/goartstore/files-manager/internal/api/errors"
)

// TokenHeader — заголовок с токеном сессии.
const TokenHeader = "X-Token"

// tokenKeyPrefix — префикс ключа сессии в Redis.
const tokenKeyPrefix = "auth_"

// TokenStore — чтение сессии по ключу. *redis.Client удовлетворяет интерфейсу.
type TokenStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// TokenAuth — middleware аутентификации по токену сессии.
type TokenAuth struct {
	store  TokenStore
	logger *slog.Logger
}

// NewTokenAuth создаёт middleware.
func NewTokenAuth(store TokenStore, logger *slog.Logger) *TokenAuth {
	return &TokenAuth{
		store:  store,
		logger: logger.With(slog.String("component", "token_auth")),
	}
}

// Middleware разрешает токен в идентификатор пользователя.
// Отсутствующий или неизвестный токен — 401; ошибка Redis — 500.
func (a *TokenAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				apierrors.Unauthorized(w)
				return
			}

			userID, err := a.store.Get(r.Context(), tokenKeyPrefix+token).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					apierrors.Unauthorized(w)
					return
				}
				a.logger.Error("Ошибка чтения сессии",
					slog.String("error", err.Error()),
				)
				apierrors.InternalError(w)
				return
			}
			if userID == "" {
				apierrors.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
