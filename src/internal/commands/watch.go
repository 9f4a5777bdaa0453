package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"golang.org/x/sys/unix"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/capture"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/chains"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/compare"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/config"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/errors"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

func CreateWatchCommand() *WatchCommand {
	wc := &WatchCommand{
		fs: flag.NewFlagSet("watch", flag.ExitOnError),
	}

	wc.fs.StringVar(&wc.Table, "table", "", "Table to sample (filter, nat, mangle, raw, security)")
	wc.fs.IntVar(&wc.Seconds, "seconds", -1, "Seconds to wait between both captures (0 = until CTRL-C)")
	wc.fs.StringVar(&wc.Source, "source", "", "Where counters are read from: command or iptables")
	wc.fs.BoolVar(&wc.JSON, "json", false, "Print the report as JSON to stdout")

	return wc
}

// WatchCommand samples the counter table twice and reports what changed.
type WatchCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config

	Table   string
	Seconds int
	Source  string
	JSON    bool

	source capture.Source
}

func (w *WatchCommand) Name() string {
	return w.fs.Name()
}

func (w *WatchCommand) Init(args []string, ctx *AppContext) error {
	if err := w.fs.Parse(args); err != nil {
		return err
	}

	// Positional "nat" and "<seconds>" arguments are accepted in any order.
	for _, arg := range w.fs.Args() {
		if arg == "nat" {
			log.Infof("Found keyword \"nat\"")
			w.Table = "nat"
		} else if n, err := strconv.Atoi(arg); err == nil && n >= 0 {
			w.Seconds = n
		} else {
			return fmt.Errorf("unexpected argument: %s", arg)
		}
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	w.cfg = cfg

	if w.Table != "" {
		w.cfg.General.Table = w.Table
	}
	if w.Seconds >= 0 {
		w.cfg.General.IntervalSeconds = w.Seconds
	}
	if w.Source != "" {
		w.cfg.General.Source = w.Source
	}
	if err := w.cfg.ValidateConfig(); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}

	if w.JSON {
		log.SetForceStdErr(true)
	}
	log.SetTimestamps(w.cfg.General.Timestamps)

	w.source, err = newSource(w.cfg.General)
	return err
}

func (w *WatchCommand) Run() error {
	sampler := &capture.Sampler{
		Source:   w.source,
		Interval: w.cfg.General.Interval(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(sigChan)

	// CTRL-C ends an open-ended wait but aborts a timed one.
	if sampler.Interval == 0 {
		stop := make(chan struct{})
		sampler.Until = stop
		go func() {
			select {
			case <-sigChan:
				close(stop)
			case <-ctx.Done():
			}
		}()
	} else {
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	sample, err := sampler.Sample(ctx)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeCapture) {
			log.Infof("Maybe try sudo?")
		}
		return err
	}

	log.Debugf("Sorting the results...")
	opts := w.cfg.Compare.ParseOptions()
	before := chains.Parse(sample.Before, opts...)
	after := chains.Parse(sample.After, opts...)

	log.Infof("Changes (in interval %s):", sample.Elapsed().Round(time.Millisecond))
	comparator := compare.NewComparator(compare.Options{CounterTokens: w.cfg.Compare.CounterRange()})

	return emitReport(w.cfg, comparator.Compare(before, after), w.JSON)
}
