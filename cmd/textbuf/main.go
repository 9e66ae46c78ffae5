// Package main is the entry point for the textbuf script runner.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/dshills/textbuf/internal/logging"
	"github.com/dshills/textbuf/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds parsed command line flags.
type options struct {
	Eval     string
	Timeout  time.Duration
	LogLevel string
	Scripts  []string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, code, done := parseFlags(args, stdout, stderr)
	if done {
		return code
	}

	cfg := logging.DefaultConfig()
	cfg.Output = stderr
	if opts.LogLevel != "" {
		lvl, ok := logging.ParseLevel(opts.LogLevel)
		if !ok {
			fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			return 1
		}
		cfg.Level = lvl
	}
	logger := logging.New(cfg)

	state, err := script.NewState(
		script.WithExecutionTimeout(opts.Timeout),
		script.WithOutput(stdout),
		script.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer state.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.Eval != "" {
		if err := state.DoString(ctx, opts.Eval); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	for _, path := range opts.Scripts {
		logger.Info("running %s", path)
		if err := state.DoFile(ctx, path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.Eval == "" && len(opts.Scripts) == 0 {
		return repl(ctx, state, stdin, stdout, stderr)
	}
	return 0
}

// repl runs each line of stdin as a chunk. The prompt is only shown when
// stdin is a terminal. Errors are reported and reading continues; the exit
// code is 1 if any line failed.
func repl(ctx context.Context, state *script.State, stdin io.Reader, stdout, stderr io.Writer) int {
	interactive := false
	if f, ok := stdin.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	status := 0
	scanner := bufio.NewScanner(stdin)
	for {
		if interactive {
			fmt.Fprint(stdout, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := state.DoString(ctx, line); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			status = 1
			if errors.Is(err, context.Canceled) {
				return status
			}
		}
	}
	if interactive {
		fmt.Fprintln(stdout)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "Error: reading input: %v\n", err)
		return 1
	}
	return status
}

// parseFlags parses args. When done is true the caller should exit with code.
func parseFlags(args []string, stdout, stderr io.Writer) (opts options, code int, done bool) {
	var showVersion bool

	fs := flag.NewFlagSet("textbuf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Eval, "e", "", "Lua code to run before any scripts")
	fs.DurationVar(&opts.Timeout, "timeout", script.DefaultExecutionTimeout, "Maximum run time per chunk (0 disables)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $"+logging.EnvLevel+" or warn")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "textbuf - run Lua scripts against the textbuf module\n\n")
		fmt.Fprintf(stderr, "Usage: textbuf [options] [script.lua ...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  textbuf script.lua                       Run a script\n")
		fmt.Fprintf(stderr, "  textbuf -e 'print(textbuf.new(\"hi\"):upper())'\n")
		fmt.Fprintf(stderr, "  textbuf                                  Read chunks from stdin\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showVersion {
		fmt.Fprintf(stdout, "textbuf %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, 0, true
	}

	opts.Scripts = fs.Args()
	return opts, 0, false
}
