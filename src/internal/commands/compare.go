package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/capture"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/chains"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/compare"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/config"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

func CreateCompareCommand() *CompareCommand {
	cc := &CompareCommand{
		fs: flag.NewFlagSet("compare", flag.ExitOnError),
	}

	cc.fs.BoolVar(&cc.JSON, "json", false, "Print the report as JSON to stdout")
	cc.fs.IntVar(&cc.CounterTokens, "counter-tokens", -1, "Leading tokens ignored when pairing nearly-equal rules (default from config)")

	return cc
}

// CompareCommand diffs two listings saved to files.
type CompareCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config

	JSON          bool
	CounterTokens int

	before *capture.FileSource
	after  *capture.FileSource
}

func (c *CompareCommand) Name() string {
	return c.fs.Name()
}

func (c *CompareCommand) Init(args []string, ctx *AppContext) error {
	if err := c.fs.Parse(args); err != nil {
		return err
	}

	if c.fs.NArg() != 2 {
		return fmt.Errorf("usage: compare [-json] <before-file> <after-file>")
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.CounterTokens >= 0 {
		c.cfg.Compare.CounterTokens = c.CounterTokens
	}
	if c.JSON {
		log.SetForceStdErr(true)
	}

	c.before = &capture.FileSource{Path: c.fs.Arg(0)}
	c.after = &capture.FileSource{Path: c.fs.Arg(1)}
	return nil
}

func (c *CompareCommand) Run() error {
	ctx := context.Background()

	beforeText, err := c.before.Capture(ctx)
	if err != nil {
		return err
	}
	afterText, err := c.after.Capture(ctx)
	if err != nil {
		return err
	}

	opts := c.cfg.Compare.ParseOptions()
	before := chains.Parse(beforeText, opts...)
	after := chains.Parse(afterText, opts...)

	if before.Len() == 0 {
		log.Warnf("No chains found in %s", c.before.Describe())
	}
	if after.Len() == 0 {
		log.Warnf("No chains found in %s", c.after.Describe())
	}

	comparator := compare.NewComparator(compare.Options{CounterTokens: c.cfg.Compare.CounterRange()})
	return emitReport(c.cfg, comparator.Compare(before, after), c.JSON)
}
