package ephemeris

import (
	"time"

	"TrueArk/internal/domain/repository"
	applogger "TrueArk/pkg/logger"
)

// Config is the immutable provider configuration, fixed at construction.
// A caller that needs a different sidecar or data path constructs a new
// provider instead of reconfiguring this one.
type Config struct {
	ServiceURL string        // Swiss Ephemeris sidecar; empty enables the built-in fallback
	EphePath   string        // data-file search path forwarded to the sidecar
	Timeout    time.Duration // per-call sidecar timeout
}

// New selects the precision path exactly once. When the sidecar is configured
// and healthy, full precision wins; otherwise the built-in reduced-precision
// backend takes over with a logged warning, never silently.
func New(cfg Config, l *applogger.Logger) repository.Ephemeris {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	if cfg.ServiceURL != "" {
		remote, err := NewRemote(cfg.ServiceURL, timeout, cfg.EphePath)
		if err == nil {
			if l != nil {
				l.Info("ephemeris sidecar connected",
					applogger.String("url", cfg.ServiceURL),
					applogger.String("mode", string(remote.Mode())),
				)
			}
			return remote
		}
		if l != nil {
			l.Warn("ephemeris sidecar unavailable, falling back to reduced precision",
				applogger.String("url", cfg.ServiceURL),
				applogger.Error(err),
			)
		}
	} else if l != nil {
		l.Warn("no ephemeris sidecar configured; using reduced-precision backend (~1-2 arcminutes)")
	}

	return NewMoshier()
}
