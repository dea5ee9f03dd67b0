package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ngc-ir/packages/compiler/src/ctxlog"
)

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes one command. Listings and the summary go to outW, logs go to errW.
func run(outW, errW io.Writer, args []string) error {
	if len(args) == 0 {
		usage(outW)
		return &ExitError{Code: 2, Message: "no command given"}
	}

	switch args[0] {
	case "help", "-h", "-help", "--help":
		usage(outW)
		return nil
	case "compile":
		cfg, shouldExit, err := parseCompile(args[1:], outW)
		if err != nil || shouldExit {
			return err
		}
		ctx := ctxlog.WithLogger(context.Background(), newLogger(errW, cfg.logLevel, cfg.logFormat))
		return compileProject(ctx, outW, cfg)
	default:
		usage(outW)
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", args[0])}
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `ngc-go - template compiler for component fixtures

Usage:
  ngc-go <command> [options] [PATH...]

Commands:
  compile   Compile the .hcl fixtures found in each PATH
  help      Show this help

Run 'ngc-go compile -h' for the compile options.
`)
}

func newLogger(w io.Writer, levelStr, formatStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}
