package main

import (
	"flag"
	"fmt"
)

// simArgs holds the parsed command-line arguments for one simulation run.
type simArgs struct {
	TxHex        string
	ConfigPath   string
	FragmentSize int
	Ethereum     bool
	Verbosity    int
}

// parseFlags parses args (excluding the program name) into a simArgs. It
// returns exit == true when the program should stop immediately (e.g.
// -h was passed or a flag failed to parse), along with the process exit
// code to use.
func parseFlags(args []string) (cfg simArgs, exit bool, code int) {
	fs := flag.NewFlagSet("celotx-sim", flag.ContinueOnError)
	fs.StringVar(&cfg.TxHex, "tx", "", "hex-encoded RLP transaction, with or without a 0x prefix")
	fs.StringVar(&cfg.ConfigPath, "config", "", "path to a TOML policy file (default: conservative built-in policy)")
	fs.IntVar(&cfg.FragmentSize, "fragment-size", 0, "split the transaction into fragments of this many bytes (0 delivers it whole)")
	fs.BoolVar(&cfg.Ethereum, "ethereum", false, "parse as an Ethereum-ordered legacy transaction instead of Celo's")
	fs.IntVar(&cfg.Verbosity, "verbosity", 1, "log verbosity 0-2")

	if err := fs.Parse(args); err != nil {
		return cfg, true, 2
	}
	if cfg.TxHex == "" {
		fmt.Fprintln(fs.Output(), "celotx-sim: -tx is required")
		return cfg, true, 2
	}
	return cfg, false, 0
}
