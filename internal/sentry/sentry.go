package sentry

import (
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/logger"
	sentrygo "github.com/getsentry/sentry-go"
)

// SentryService reports boundary and system failures to Sentry. When Sentry
// is disabled in configuration every method is a no-op, so callers never
// need to guard their calls.
type SentryService struct {
	cfg    *config.Configuration
	logger *logger.Logger
}

// NewSentryService creates a new sentry service.
func NewSentryService(cfg *config.Configuration, log *logger.Logger) *SentryService {
	return &SentryService{
		cfg:    cfg,
		logger: log,
	}
}

// Initialize sets up the Sentry SDK. Safe to skip entirely; CaptureException
// checks the enabled flag itself.
func (s *SentryService) Initialize() error {
	if !s.cfg.Sentry.Enabled {
		return nil
	}

	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              s.cfg.Sentry.DSN,
		Environment:      s.cfg.Sentry.Environment,
		SampleRate:       s.cfg.Sentry.SampleRate,
		AttachStacktrace: true,
	})
	if err != nil {
		s.logger.Warnw("failed to initialize sentry", "error", err)
		return err
	}
	return nil
}

// CaptureException reports an error to Sentry if enabled.
func (s *SentryService) CaptureException(err error) {
	if err == nil || !s.cfg.Sentry.Enabled {
		return
	}
	sentrygo.CaptureException(err)
}
