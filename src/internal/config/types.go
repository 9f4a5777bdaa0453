package config

import (
	"time"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/chains"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/matcher"
)

type IPFamily uint8

const (
	Ipv4 IPFamily = 4
	Ipv6 IPFamily = 6
)

const (
	SourceCommand  = "command"
	SourceIPTables = "iptables"
)

// Template variables available in report line formats.
const (
	REPORT_TMPL_LINE  = "line"
	REPORT_TMPL_CHAIN = "chain"
)

type Config struct {
	// General holds capture settings.
	General GeneralConfig `toml:"general" json:"general"`
	// Compare tunes the chain comparison.
	Compare CompareConfig `toml:"compare" json:"compare"`
	// Report holds the line formats of the logged report.
	Report ReportConfig `toml:"report" json:"report"`
	// API holds HTTP server settings for the "serve" command.
	API APIConfig `toml:"api" json:"api"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// Table is the iptables table to sample (default: filter).
	Table string `toml:"table" json:"table" validate:"required,oneof=filter nat mangle raw security"`
	// IPVersion selects iptables (4) or ip6tables (6).
	IPVersion IPFamily `toml:"ip_version" json:"ip_version" validate:"required,oneof=4 6"`
	// Source is "command" to run `iptables -L -v -n` or "iptables" to read counters through go-iptables.
	Source string `toml:"source" json:"source" validate:"required,oneof=command iptables"`
	// IntervalSeconds is the wait between both captures (0 = wait until CTRL-C).
	IntervalSeconds int `toml:"interval_seconds" json:"interval_seconds" validate:"gte=0"`
	// Timestamps prefixes log lines with the wall-clock time.
	Timestamps bool `toml:"timestamps" json:"timestamps"`
}

type CompareConfig struct {
	// CounterTokens is the number of leading tokens (packets, bytes) ignored when pairing nearly-equal rules (default: 2).
	CounterTokens int `toml:"counter_tokens" json:"counter_tokens" validate:"gte=0"`
	// FilterColumnHeader drops the "pkts bytes target ..." row instead of comparing it like a rule.
	FilterColumnHeader bool `toml:"filter_column_header" json:"filter_column_header"`
}

type ReportConfig struct {
	// Separator is logged before each changed chain.
	Separator string `toml:"separator" json:"separator"`
	// BeforeFormat and AfterFormat render both sides of a pair. Available variables: {{line}}, {{chain}}.
	BeforeFormat string `toml:"before_format" json:"before_format" validate:"line_template"`
	AfterFormat  string `toml:"after_format" json:"after_format" validate:"line_template"`
	// NewFormat renders lines of an added chain.
	NewFormat string `toml:"new_format" json:"new_format" validate:"line_template"`
	// RemovedFormat renders lines of a removed chain.
	RemovedFormat string `toml:"removed_format" json:"removed_format" validate:"line_template"`
}

type APIConfig struct {
	// ListenAddr is the address of the HTTP API (default: 127.0.0.1:12121).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"required,hostname_port"`
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			Table:     "filter",
			IPVersion: Ipv4,
			Source:    SourceCommand,
		},
		Compare: CompareConfig{
			CounterTokens: 2,
		},
		Report: ReportConfig{
			Separator:     "__________________________",
			BeforeFormat:  "Before:   {{line}}",
			AfterFormat:   "After:    {{line}}",
			NewFormat:     "New: {{line}}",
			RemovedFormat: "Removed: {{line}}",
		},
		API: APIConfig{
			ListenAddr: "127.0.0.1:12121",
		},
	}
}

// Interval returns the wait between captures.
func (g GeneralConfig) Interval() time.Duration {
	return time.Duration(g.IntervalSeconds) * time.Second
}

// CounterRange returns the token range compared by the near-match pass.
func (c CompareConfig) CounterRange() matcher.TokenRange {
	return matcher.TokenRange{From: c.CounterTokens, To: matcher.ToEnd}
}

// ParseOptions returns the listing parser options.
func (c CompareConfig) ParseOptions() []chains.Option {
	if c.FilterColumnHeader {
		return []chains.Option{chains.WithoutColumnHeader()}
	}
	return nil
}

// GetConfigFilePath returns the absolute path of the loaded file, empty for defaults.
func (c *Config) GetConfigFilePath() string {
	return c._absConfigFilePath
}
