package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/capture"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/chains"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/config"
)

func CreateParseCommand() *ParseCommand {
	return &ParseCommand{
		fs: flag.NewFlagSet("parse", flag.ExitOnError),
	}
}

// ParseCommand prints how a saved listing is split into chains.
type ParseCommand struct {
	fs     *flag.FlagSet
	cfg    *config.Config
	source *capture.FileSource
}

func (p *ParseCommand) Name() string {
	return p.fs.Name()
}

func (p *ParseCommand) Init(args []string, ctx *AppContext) error {
	if err := p.fs.Parse(args); err != nil {
		return err
	}

	if p.fs.NArg() != 1 {
		return fmt.Errorf("usage: parse <file>")
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	p.cfg = cfg
	p.source = &capture.FileSource{Path: p.fs.Arg(0)}
	return nil
}

func (p *ParseCommand) Run() error {
	text, err := p.source.Capture(context.Background())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(chains.Parse(text, p.cfg.Compare.ParseOptions()...).Ordered())
}
