package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ExitError is an error that carries the process exit code
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

type compileConfig struct {
	paths      []string
	configPath string
	outputDir  string
	workers    int
	compat     string
	mode       string
	logLevel   string
	logFormat  string
}

// parseCompile reads the arguments of the compile command. shouldExit is set when help was
// printed.
func parseCompile(args []string, output io.Writer) (*compileConfig, bool, error) {
	flagSet := flag.NewFlagSet("compile", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Usage:
  ngc-go compile [options] PATH...

Arguments:
  PATH
    A fixture file or a directory searched for .hcl fixtures.

Options:
`)
		flagSet.PrintDefaults()
	}

	cfg := &compileConfig{}
	flagSet.StringVar(&cfg.configPath, "config", "", "Path to an HCL options file.")
	flagSet.StringVar(&cfg.outputDir, "out", "", "Directory for the compiled listings. Listings are printed when empty.")
	flagSet.IntVar(&cfg.workers, "workers", 0, "Number of components compiled concurrently. 0 keeps the configured value.")
	flagSet.StringVar(&cfg.compat, "compat", "", "Compatibility mode. Options: 'normal' or 'legacy'.")
	flagSet.StringVar(&cfg.mode, "mode", "", "Compilation mode. Options: 'full' or 'dom_only'.")
	flagSet.StringVar(&cfg.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.StringVar(&cfg.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg.paths = flagSet.Args()
	if len(cfg.paths) == 0 {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "no fixture path given"}
	}

	cfg.logFormat = strings.ToLower(cfg.logFormat)
	if cfg.logFormat != "text" && cfg.logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	cfg.logLevel = strings.ToLower(cfg.logLevel)
	switch cfg.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if cfg.workers < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must not be negative"}
	}
	return cfg, false, nil
}
