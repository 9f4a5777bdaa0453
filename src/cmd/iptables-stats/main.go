package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/merretbuurman/iptables-stats-comparison/src/internal/commands"
	"github.com/merretbuurman/iptables-stats-comparison/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	flag.StringVar(&ctx.ConfigPath, "config", "/etc/iptables-stats/iptables-stats.toml", "Path to configuration file (defaults apply if it does not exist)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "iptables counter snapshot comparison\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [options] [seconds] [nat]   (same as \"watch\")\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  watch [seconds] [nat]   Sample the counters twice and report which rules matched in between\n")
		fmt.Fprintf(os.Stderr, "  compare <before> <after> Compare two saved listings\n")
		fmt.Fprintf(os.Stderr, "  parse <file>            Print the chains of a saved listing as JSON\n")
		fmt.Fprintf(os.Stderr, "  config                  Print the effective configuration\n")
		fmt.Fprintf(os.Stderr, "  serve                   Run the HTTP API\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	watch := commands.CreateWatchCommand()
	cmds := []commands.Runner{
		watch,
		commands.CreateCompareCommand(),
		commands.CreateParseCommand(),
		commands.CreateShowConfigCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	var cmd commands.Runner = watch
	cmdArgs := args
	if len(args) > 0 {
		for _, c := range cmds {
			if c.Name() == args[0] {
				cmd = c
				cmdArgs = args[1:]
				break
			}
		}
	}

	if err := cmd.Init(cmdArgs, ctx); err != nil {
		log.Fatalf("Failed to initialize command: %v", err)
	}

	if err := cmd.Run(); err != nil {
		log.Fatalf("Failed to run command: %v", err)
	}
}
