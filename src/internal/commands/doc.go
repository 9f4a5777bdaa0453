// Package commands implements the CLI subcommands.
//
// Every command implements the Runner interface:
//   - Init(): parse arguments, load configuration and apply overrides
//   - Run(): execute the command
//   - Name(): return command name for routing
//
// # Available Commands
//
//   - watch: sample the counter table twice and report which rules matched
//   - compare: compare two listings saved to files
//   - parse: print the chains of a saved listing as JSON
//   - config: print or write the effective configuration
//   - serve: run the HTTP API under a restarting supervisor
//
// # Example Usage
//
//	cmd := commands.CreateWatchCommand()
//	ctx := &commands.AppContext{
//	    ConfigPath: "/etc/iptables-stats/iptables-stats.toml",
//	}
//	if err := cmd.Init([]string{"30", "nat"}, ctx); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package commands
