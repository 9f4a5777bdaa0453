package capture

import (
	"context"
	"time"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/errors"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

// DefaultTick is how often progress is logged while waiting.
const DefaultTick = 10 * time.Second

// Sample holds two listings of the same table taken some time apart.
type Sample struct {
	Before   string
	After    string
	BeforeAt time.Time
	AfterAt  time.Time
}

// Elapsed returns the time between both captures.
func (s *Sample) Elapsed() time.Duration {
	return s.AfterAt.Sub(s.BeforeAt)
}

// Sampler captures a listing, waits and captures it again.
type Sampler struct {
	Source Source
	// Interval to wait between captures. Zero waits until Until is closed.
	Interval time.Duration
	// Until ends an open-ended wait.
	Until <-chan struct{}
	// Tick is the progress logging period, DefaultTick if zero.
	Tick time.Duration

	now func() time.Time
}

func (s *Sampler) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Sample takes both captures. Cancelling ctx aborts the sample at any point;
// closing Until only ends an open-ended wait, after which the second capture
// is still taken.
func (s *Sampler) Sample(ctx context.Context) (*Sample, error) {
	if s.Source == nil {
		return nil, errors.NewInternalError("sampler has no source", nil)
	}
	if s.Interval <= 0 && s.Until == nil {
		return nil, errors.NewInternalError("sampler needs an interval or a stop channel", nil)
	}

	sample := &Sample{BeforeAt: s.clock()}
	log.Infof("Command to be run: %s", s.Source.Describe())
	log.Infof("Getting iptables stats (%s)...", sample.BeforeAt.Format("2006-01-02_15:04"))

	before, err := s.Source.Capture(ctx)
	if err != nil {
		return nil, err
	}
	sample.Before = before

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	sample.AfterAt = s.clock()
	log.Infof("Getting iptables stats again (%s)...", sample.AfterAt.Format("2006-01-02_15:04"))

	after, err := s.Source.Capture(ctx)
	if err != nil {
		return nil, err
	}
	sample.After = after

	return sample, nil
}

func (s *Sampler) wait(ctx context.Context) error {
	tick := s.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var deadline <-chan time.Time
	until := s.Until
	if s.Interval > 0 {
		until = nil
		log.Infof("Waiting for %s.", s.Interval)
		timer := time.NewTimer(s.Interval)
		defer timer.Stop()
		deadline = timer.C
	} else {
		log.Infof("Waiting indefinitely... Please stop with CTRL-C.")
	}

	started := s.clock()
	for {
		select {
		case <-ctx.Done():
			return errors.NewCaptureError("interrupted while waiting between captures", ctx.Err())
		case <-until:
			log.Infof("Stopped by user")
			return nil
		case <-deadline:
			return nil
		case <-ticker.C:
			log.Debugf("Still waiting (%s elapsed)", s.clock().Sub(started).Round(time.Second))
		}
	}
}
