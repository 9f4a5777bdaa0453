// Package config handles configuration file parsing and validation for iptables-stats.
//
// The configuration file is optional TOML. Every key has a default, so a file
// only needs the settings that differ:
//
//	[general]
//	table = "nat"
//	interval_seconds = 30
//
//	[compare]
//	counter_tokens = 2
//	filter_column_header = false
//
//	[report]
//	before_format = "Before:   {{line}}"
//	after_format = "After:    {{line}}"
//
//	[api]
//	listen_addr = "127.0.0.1:12121"
//
// # Example Usage
//
//	cfg, err := config.LoadConfigOrDefault("/etc/iptables-stats.toml")
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package config
