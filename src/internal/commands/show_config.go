package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/config"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

func CreateShowConfigCommand() *ShowConfigCommand {
	sc := &ShowConfigCommand{
		fs: flag.NewFlagSet("config", flag.ExitOnError),
	}

	sc.fs.StringVar(&sc.WritePath, "write", "", "Write the effective configuration to this file instead of printing it")

	return sc
}

// ShowConfigCommand prints the effective configuration as TOML.
type ShowConfigCommand struct {
	fs  *flag.FlagSet
	cfg *config.Config

	WritePath string
}

func (s *ShowConfigCommand) Name() string {
	return s.fs.Name()
}

func (s *ShowConfigCommand) Init(args []string, ctx *AppContext) error {
	if err := s.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

func (s *ShowConfigCommand) Run() error {
	if s.WritePath != "" {
		if err := s.cfg.WriteConfig(s.WritePath); err != nil {
			return fmt.Errorf("failed to write configuration: %v", err)
		}
		log.Infof("Configuration written to %s", s.WritePath)
		return nil
	}

	buf, err := s.cfg.SerializeConfig()
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %v", err)
	}
	_, err = os.Stdout.Write(buf.Bytes())
	return err
}
