package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	slogctx "github.com/veqryn/slog-context"
)

const (
	programName    = "mclaunch"
	defaultProfile = "launch.hcl"
)

func main() {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.Bool("h", false, "alias for help")
	fs.Bool("help", false, "print usage")
	verbose := fs.Bool("v", false, "log debug messages")
	jsonLog := fs.Bool("json", false, "log in JSON format")

	cdr := subcommands.NewCommander(fs, programName)
	cdr.Register(&InitCommand{}, "")
	cdr.Register(&ResolveCommand{}, "")
	cdr.Register(&DownloadCommand{}, "")
	cdr.Register(&ArgsCommand{}, "")
	cdr.Register(&LaunchCommand{}, "")
	cdr.Register(&SumsCommand{}, "")
	cdr.Register(&FormatCommand{}, "")
	cdr.Register(&CleanCommand{}, "")
	cdr.Register(cdr.HelpCommand(), "help")
	cdr.Register(cdr.FlagsCommand(), "help")
	cdr.Register(cdr.CommandsCommand(), "help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	logger := newLogger(*verbose, *jsonLog)
	slog.SetDefault(logger)
	ctx := slogctx.NewCtx(context.Background(), logger)

	switch cdr.Execute(ctx) {
	case subcommands.ExitFailure:
		os.Exit(1)
	case subcommands.ExitUsageError:
		os.Exit(2)
	}
}

func newLogger(verbose, jsonLog bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if jsonLog {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
