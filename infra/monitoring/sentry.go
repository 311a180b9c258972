package monitoring

import (
	"context"
	"errors"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/kilianp07/berthplan/config"
	coremon "github.com/kilianp07/berthplan/core/monitoring"
)

// NewSentryMonitor returns a Sentry-backed Monitor, or a NopMonitor when no
// DSN is configured.
func NewSentryMonitor(cfg config.SentryConfig) (coremon.Monitor, error) {
	if cfg.DSN == "" {
		return coremon.NopMonitor{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		TracesSampleRate: cfg.TracesSampleRate,
		AttachStacktrace: true,
		BeforeSend:       dropCancellation,
	})
	if err != nil {
		return nil, err
	}
	return &sentryMonitor{hub: sentry.CurrentHub()}, nil
}

// dropCancellation discards events for runs aborted by shutdown.
func dropCancellation(ev *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if hint != nil && isCancellation(hint.OriginalException) {
		return nil
	}
	return ev
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

type sentryMonitor struct {
	hub *sentry.Hub
}

func (s *sentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("service", "berthplan")
		scope.SetTags(tags)
		if c := tags["component"]; c != "" {
			scope.SetFingerprint([]string{"{{ default }}", c})
		}
		s.hub.CaptureException(err)
	})
}

func (s *sentryMonitor) ReportPanic(v any) {
	s.hub.Recover(v)
	s.hub.Flush(2 * time.Second)
}

func (s *sentryMonitor) Flush(timeout time.Duration) { s.hub.Flush(timeout) }
