package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	slogctx "github.com/veqryn/slog-context"
)

type CleanCommand struct {
}

func (*CleanCommand) Name() string     { return "clean" }
func (*CleanCommand) Synopsis() string { return "remove cached files" }
func (*CleanCommand) Usage() string {
	return `Usage: mclaunch clean

	Cleans cached downloads and descriptors.
`
}

func (cmd *CleanCommand) SetFlags(f *flag.FlagSet) {
}

func (cmd *CleanCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	log := slogctx.FromCtx(ctx)
	path, err := cacheDir(programName)
	if err != nil {
		log.Error("cache path", "err", err)
		return subcommands.ExitFailure
	}
	if err := os.RemoveAll(path); err != nil {
		log.Error("clean", "path", path, "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
