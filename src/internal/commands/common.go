package commands

import (
	"fmt"
	"os"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/capture"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/compare"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/config"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/report"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
}

// loadAndValidateConfigOrFail loads configuration from file (or defaults when
// the file does not exist) and validates it.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return cfg, nil
}

// newSource builds the snapshot source selected in the general settings.
func newSource(general config.GeneralConfig) (capture.Source, error) {
	switch general.Source {
	case config.SourceIPTables:
		return capture.NewIPTablesSource(int(general.IPVersion), general.Table)
	case config.SourceCommand, "":
		return capture.NewCommandSource(int(general.IPVersion), general.Table), nil
	default:
		return nil, fmt.Errorf("unknown source: %s", general.Source)
	}
}

// emitReport writes the report as JSON to stdout or logs it as a narrative.
func emitReport(cfg *config.Config, r *compare.Report, asJSON bool) error {
	if asJSON {
		return report.WriteJSON(os.Stdout, r)
	}

	reporter, err := report.NewReporter(cfg.Report)
	if err != nil {
		return fmt.Errorf("invalid report format: %v", err)
	}
	reporter.Log(r)
	return nil
}
