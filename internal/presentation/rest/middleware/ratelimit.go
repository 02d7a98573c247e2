package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"wallet-gateway/internal/infrastructure/config"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
)

// visitorLimiter クライアントごとのレートリミッター
type visitorLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware 認証エンドポイント向けのIP単位レート制限ミドルウェア
// OTP・シードフレーズの総当たりを抑止する。一定時間アクセスのない
// クライアントのリミッターは破棄する。
func RateLimitMiddleware(cfg *config.RateLimitConfig, logger *otelinfra.Logger) echo.MiddlewareFunc {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitorLimiter)
	)

	const staleAfter = 10 * time.Minute

	getLimiter := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		if v, ok := visitors[ip]; ok {
			v.lastSeen = now
			return v.limiter
		}

		for key, v := range visitors {
			if now.Sub(v.lastSeen) > staleAfter {
				delete(visitors, key)
			}
		}

		limiter := rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)
		visitors[ip] = &visitorLimiter{limiter: limiter, lastSeen: now}
		return limiter
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := getClientIP(c)
			if !getLimiter(ip).Allow() {
				logger.Warn(c.Request().Context(), "Rate limit exceeded", map[string]interface{}{
					"ip":   ip,
					"path": c.Request().URL.Path,
				})
				return c.JSON(http.StatusTooManyRequests, ErrorResponse{
					Error:   "too_many_requests",
					Message: "Too many requests, please try again later",
				})
			}
			return next(c)
		}
	}
}
