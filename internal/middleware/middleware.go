package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	handlers "pitchdeck/internal/handler"
	"pitchdeck/internal/monitoring"
	"pitchdeck/internal/service"
)

type Middleware func(http.Handler) http.Handler

type requestIDKey struct{}

const RequestIDHeader = "X-Request-ID"

// Chain wraps h so that the last middleware runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info().
			Str("request_id", RequestIDFromContext(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("latency_ms", time.Since(start)).
			Str("ip", r.RemoteAddr).
			Msg("HTTP Request")
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic: %v", rec)
				log.Error().
					Err(err).
					Str("request_id", RequestIDFromContext(r.Context())).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")
				monitoring.CaptureError(r.Context(), err)
				handlers.WriteError(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionMiddleware loads the session from the session cookie or a Bearer
// token. It never rejects a request; handlers decide what needs a session.
// Every valid cookie is re-issued with a fresh expiry.
func SessionMiddleware(auth service.AuthService, tokens *service.TokenCodec, secureCookies bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, fromCookie := tokenFromRequest(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()

			token, err := tokens.Decode(raw)
			if err != nil {
				log.Debug().Err(err).Msg("ignoring invalid session token")
				if fromCookie {
					handlers.ClearSessionCookie(w, secureCookies)
				}
				next.ServeHTTP(w, r)
				return
			}

			enriched, err := auth.EnrichToken(ctx, token, nil, nil)
			if err != nil {
				log.Warn().Err(err).Msg("enrich session token")
				enriched = token
			}

			if fromCookie {
				refreshed, stored, err := tokens.Encode(enriched)
				if err != nil {
					log.Warn().Err(err).Msg("refresh session token")
				} else {
					enriched = stored
					handlers.SetSessionCookie(w, refreshed, stored.ExpiresAt, secureCookies)
				}
			}

			session := auth.ProjectSession(enriched)
			next.ServeHTTP(w, r.WithContext(handlers.WithSession(ctx, &session)))
		})
	}
}

func tokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(handlers.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1], false
	}

	return "", false
}
