package monitoring

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
)

// Init enables Sentry when a DSN is configured. It reports whether events will be sent.
func Init(dsn, env string) bool {
	if dsn == "" {
		return false
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
		Environment:      env,
	}); err != nil {
		log.Error().Err(err).Msg("sentry init failed")
		return false
	}

	return true
}

func Flush() {
	sentry.Flush(2 * time.Second)
}

// CaptureError reports err on the request hub when one is attached to ctx.
func CaptureError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
