package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	slogctx "github.com/veqryn/slog-context"

	"github.com/tie/mclaunch/process"
)

type LaunchCommand struct {
	DisableCache    bool
	DisableDownload bool
	ArgFileDir      string
}

func (*LaunchCommand) Name() string     { return "launch" }
func (*LaunchCommand) Synopsis() string { return "download and start the game" }
func (*LaunchCommand) Usage() string {
	return `Usage: mclaunch launch [-nocache] [-nodownload] [-argdir dir] [profile paths]

	Downloads missing files, then starts the runtime. Runtimes newer
	than Java 8 receive their arguments through an argument file that
	is removed once the game exits.

Flags:
`
}

func (cmd *LaunchCommand) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.DisableCache, "nocache", false, "disable filesystem cache")
	f.BoolVar(&cmd.DisableDownload, "nodownload", false, "do not download missing files")
	f.StringVar(&cmd.ArgFileDir, "argdir", "", "directory for the argument file")
}

func (cmd *LaunchCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	log := slogctx.FromCtx(ctx)
	s, err := openSession(ctx, f.Args(), cmd.DisableCache)
	if err != nil {
		log.Error("open session", "err", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	p, err := s.plan(ctx)
	if err != nil {
		log.Error("resolve", "version", s.profile.Version, "err", err)
		return subcommands.ExitFailure
	}
	if !cmd.DisableDownload {
		if err := download(ctx, s, p, true); err != nil {
			log.Error("download", "err", err)
			return subcommands.ExitFailure
		}
	}

	inv, err := p.Invocation(cmd.ArgFileDir)
	if err != nil {
		log.Error("prepare arguments", "err", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := inv.Cleanup(); err != nil {
			log.Warn("remove argument file", "path", inv.ArgFile, "err", err)
		}
	}()

	game := log.With("version", p.Descriptor.ID)
	err = process.Run(ctx, process.Command{
		Path:   p.Java,
		Args:   inv.Args,
		Dir:    s.layout.Root,
		Env:    s.profile.Env,
		Stdout: func(line string) { game.Info(line) },
		Stderr: func(line string) { game.Warn(line) },
	})
	if err != nil {
		log.Error("launch", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
