package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	slogctx "github.com/veqryn/slog-context"

	"github.com/tie/mclaunch"
)

type DownloadCommand struct {
	DisableCache bool
	SkipAssets   bool
}

func (*DownloadCommand) Name() string     { return "download" }
func (*DownloadCommand) Synopsis() string { return "download libraries, assets and runtime" }
func (*DownloadCommand) Usage() string {
	return `Usage: mclaunch download [-nocache] [-noassets] [profile paths]

	Downloads everything the profile version needs into the game
	directory. Files already present with the expected size are kept.

Flags:
`
}

func (cmd *DownloadCommand) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.DisableCache, "nocache", false, "disable filesystem cache")
	f.BoolVar(&cmd.SkipAssets, "noassets", false, "skip asset objects")
}

func (cmd *DownloadCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
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
	if err := download(ctx, s, p, !cmd.SkipAssets); err != nil {
		log.Error("download", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// download fetches the plan downloads and then, once the asset index is
// on disk, the asset objects it lists.
func download(ctx context.Context, s *session, p *mclaunch.Plan, withAssets bool) error {
	log := slogctx.FromCtx(ctx)
	log.Info("downloading", "files", len(p.Downloads))
	if err := s.fetcher.Fetch(ctx, p.Downloads); err != nil {
		return err
	}
	if !withAssets {
		return nil
	}
	objs, err := p.AssetDownloads()
	if err != nil {
		return err
	}
	log.Info("downloading assets", "objects", len(objs))
	return s.fetcher.Fetch(ctx, s.profile.Pin(objs))
}
