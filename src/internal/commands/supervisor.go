package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

// SupervisorConfig contains configuration for Supervisor.
type SupervisorConfig struct {
	Name           string
	MaxRestarts    int           // 0 = unlimited restarts
	RestartBackoff time.Duration // Initial backoff (default: 1s)
	MaxBackoff     time.Duration // Max backoff (default: 30s)
}

// Supervisor runs a function until its context is cancelled, restarting it
// with exponential backoff when it fails or panics.
type Supervisor struct {
	name           string
	runFunc        func(ctx context.Context) error
	maxRestarts    int
	restartBackoff time.Duration
	maxBackoff     time.Duration

	restartCount int
	lastError    error
}

// NewSupervisor creates a supervisor for runFunc.
func NewSupervisor(cfg SupervisorConfig, runFunc func(ctx context.Context) error) *Supervisor {
	if cfg.RestartBackoff == 0 {
		cfg.RestartBackoff = 1 * time.Second
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 30 * time.Second
	}

	return &Supervisor{
		name:           cfg.Name,
		runFunc:        runFunc,
		maxRestarts:    cfg.MaxRestarts,
		restartBackoff: cfg.RestartBackoff,
		maxBackoff:     cfg.MaxBackoff,
	}
}

// RestartCount returns the number of restarts so far.
func (s *Supervisor) RestartCount() int {
	return s.restartCount
}

// LastError returns the error of the last failed run.
func (s *Supervisor) LastError() error {
	return s.lastError
}

// Run blocks until runFunc exits cleanly, ctx is cancelled or the restart
// limit is reached. Only the last case returns an error.
func (s *Supervisor) Run(ctx context.Context) error {
	backoff := s.restartBackoff

	for {
		err := s.runWithRecovery(ctx)
		if err == nil {
			log.Infof("%s: exited cleanly", s.name)
			return nil
		}
		s.lastError = err

		if ctx.Err() != nil {
			log.Infof("%s: context cancelled, stopping", s.name)
			return nil
		}

		s.restartCount++
		if s.maxRestarts > 0 && s.restartCount >= s.maxRestarts {
			log.Errorf("%s: max restarts (%d) reached, giving up. Last error: %v", s.name, s.maxRestarts, err)
			return fmt.Errorf("%s: giving up after %d restarts: %w", s.name, s.restartCount, err)
		}

		log.Errorf("%s: crashed with error: %v. Restarting in %v (restart #%d)", s.name, err, backoff, s.restartCount)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		backoff *= 2
		if backoff > s.maxBackoff {
			backoff = s.maxBackoff
		}
	}
}

func (s *Supervisor) runWithRecovery(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()

	return s.runFunc(ctx)
}
