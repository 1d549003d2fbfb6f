package api

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// rateLimitMiddleware ограничивает запросы двумя контурами: скользящее окно
// на пользователя (redis с failover) и token bucket на клиента в процессе.
func (s *HTTPServer) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.allowClient(r) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		if s.limits != nil && s.cfg.RateLimit.Requests > 0 {
			if raw := r.Header.Get(HeaderUserID); raw != "" {
				if userID, err := strconv.ParseInt(raw, 10, 64); err == nil && userID > 0 {
					allowed, err := s.limits.CheckRateLimit(
						r.Context(),
						userID,
						s.cfg.RateLimit.Requests,
						time.Duration(s.cfg.RateLimit.Window)*time.Second,
					)
					if err != nil {
						s.logger.Warn().Err(err).Int64("user_id", userID).Msg("rate limit check failed")
					} else if !allowed {
						writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
						return
					}
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) allowClient(r *http.Request) bool {
	if s.cfg.RateLimit.RPS <= 0 {
		return true
	}
	return s.clientLimiter(clientKey(r)).Allow()
}

func (s *HTTPServer) clientLimiter(key string) *rate.Limiter {
	if v, ok := s.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := s.cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(s.cfg.RateLimit.RPS), burst)
	actual, loaded := s.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}
