package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	HeaderClientSource   = "X-Client-Source"
	HeaderDashboardToken = "X-Dashboard-Token"
)

type sourceChannelKey struct{}

// SourceChannel определяет канал заявки.
// dashboard - только при X-Client-Source: dashboard и, если токен настроен, совпадающем X-Dashboard-Token.
// Все остальное считается внешним каналом
func SourceChannel(dashboardToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			channel := resolveChannel(r, dashboardToken)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sourceChannelKey{}, channel)))
		})
	}
}

func resolveChannel(r *http.Request, token string) domain.SourceChannel {
	if !strings.EqualFold(strings.TrimSpace(r.Header.Get(HeaderClientSource)), string(domain.ChannelDashboard)) {
		return domain.ChannelExternal
	}
	if token == "" {
		return domain.ChannelDashboard
	}
	if subtle.ConstantTimeCompare([]byte(r.Header.Get(HeaderDashboardToken)), []byte(token)) == 1 {
		return domain.ChannelDashboard
	}
	return domain.ChannelExternal
}

// GetSourceChannel возвращает канал текущего запроса
func GetSourceChannel(ctx context.Context) (domain.SourceChannel, bool) {
	channel, ok := ctx.Value(sourceChannelKey{}).(domain.SourceChannel)
	return channel, ok
}

// ChannelOf канал запроса, external по умолчанию
func ChannelOf(ctx context.Context) domain.SourceChannel {
	if channel, ok := GetSourceChannel(ctx); ok {
		return channel
	}
	return domain.ChannelExternal
}
