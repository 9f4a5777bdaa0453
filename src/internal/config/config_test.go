package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/matcher"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configFile := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return configFile
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/file.toml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadConfigOrDefault_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfigOrDefault("/non/existent/file.toml")
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error: %v", err)
	}
	if cfg.General.Table != "filter" || cfg.Compare.CounterTokens != 2 {
		t.Errorf("Expected default configuration, got %+v", cfg)
	}
	if cfg.GetConfigFilePath() != "" {
		t.Errorf("Expected no file path for defaults, got %s", cfg.GetConfigFilePath())
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	configFile := writeConfig(t, `[general
	table = "nat"`)

	if _, err := LoadConfig(configFile); err == nil {
		t.Error("Expected error for invalid TOML")
	}
	if _, err := LoadConfigOrDefault(configFile); err == nil {
		t.Error("Expected parse errors not to fall back to defaults")
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	configFile := writeConfig(t, `[general]
table = "nat"
interval_seconds = 30

[report]
before_format = "<- {{chain}}: {{line}}"
`)

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error for valid config: %v", err)
	}

	if cfg.General.Table != "nat" {
		t.Errorf("Expected table nat, got %s", cfg.General.Table)
	}
	if cfg.General.Interval() != 30*time.Second {
		t.Errorf("Expected 30s interval, got %s", cfg.General.Interval())
	}
	if cfg.General.Source != SourceCommand || cfg.General.IPVersion != Ipv4 {
		t.Errorf("Expected default source and ip version, got %+v", cfg.General)
	}
	if cfg.Report.BeforeFormat != "<- {{chain}}: {{line}}" {
		t.Errorf("Expected custom before format, got %q", cfg.Report.BeforeFormat)
	}
	if cfg.Report.AfterFormat != "After:    {{line}}" {
		t.Errorf("Expected default after format, got %q", cfg.Report.AfterFormat)
	}
	if cfg.GetConfigFilePath() != configFile {
		t.Errorf("Expected file path %s, got %s", configFile, cfg.GetConfigFilePath())
	}
	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestValidateConfig_Defaults(t *testing.T) {
	if err := DefaultConfig().ValidateConfig(); err != nil {
		t.Errorf("Expected default configuration to be valid, got %v", err)
	}
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		fieldPath string
	}{
		{"unknown table", func(c *Config) { c.General.Table = "broute" }, "general.table"},
		{"bad ip version", func(c *Config) { c.General.IPVersion = 5 }, "general.ip_version"},
		{"bad source", func(c *Config) { c.General.Source = "nft" }, "general.source"},
		{"negative interval", func(c *Config) { c.General.IntervalSeconds = -1 }, "general.interval_seconds"},
		{"negative counter tokens", func(c *Config) { c.Compare.CounterTokens = -2 }, "compare.counter_tokens"},
		{"format without line", func(c *Config) { c.Report.NewFormat = "New rule" }, "report.new_format"},
		{"bad listen addr", func(c *Config) { c.API.ListenAddr = "localhost" }, "api.listen_addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.ValidateConfig()
			if err == nil {
				t.Fatal("Expected validation error")
			}

			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("Expected ValidationErrors, got %T", err)
			}
			if len(verrs) != 1 || verrs[0].FieldPath != tt.fieldPath {
				t.Errorf("Expected single error for %s, got %v", tt.fieldPath, verrs)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	verrs := ValidationErrors{
		{FieldPath: "general.table", Message: "must be one of: filter nat"},
		{FieldPath: "api.listen_addr", Message: "field is required"},
	}

	msg := verrs.Error()
	if !strings.Contains(msg, "2 error(s)") || !strings.Contains(msg, "2. api.listen_addr: field is required") {
		t.Errorf("Unexpected message: %s", msg)
	}
}

func TestCompareConfig_Helpers(t *testing.T) {
	c := CompareConfig{CounterTokens: 3}
	if got := c.CounterRange(); got != (matcher.TokenRange{From: 3, To: matcher.ToEnd}) {
		t.Errorf("CounterRange() = %+v", got)
	}
	if len(c.ParseOptions()) != 0 {
		t.Errorf("Expected no parse options by default")
	}

	c.FilterColumnHeader = true
	if len(c.ParseOptions()) != 1 {
		t.Errorf("Expected header filter option")
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.Table = "mangle"
	cfg.Compare.FilterColumnHeader = true

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := cfg.WriteConfig(path); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.General.Table != "mangle" || !loaded.Compare.FilterColumnHeader {
		t.Errorf("Expected written settings to be loaded back, got %+v", loaded)
	}
}
