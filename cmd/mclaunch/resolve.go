package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	slogctx "github.com/veqryn/slog-context"
)

type ResolveCommand struct {
	DisableCache bool
}

func (*ResolveCommand) Name() string     { return "resolve" }
func (*ResolveCommand) Synopsis() string { return "print the resolved classpath and downloads" }
func (*ResolveCommand) Usage() string {
	return `Usage: mclaunch resolve [-nocache] [profile paths]

	Resolves the inheritance chain of the profile version and prints
	the classpath entries followed by every file the launch needs.

Flags:
`
}

func (cmd *ResolveCommand) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.DisableCache, "nocache", false, "disable filesystem cache")
}

func (cmd *ResolveCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
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
	fmt.Printf("version %s (main class %s, java %d)\n", p.Descriptor.ID, p.Descriptor.MainClass, p.JavaMajor)
	fmt.Println("classpath:")
	for _, e := range p.Libraries.Classpath.Paths() {
		fmt.Printf("\t%s\n", e)
	}
	fmt.Println("downloads:")
	for _, d := range p.Downloads {
		fmt.Printf("\t%s -> %s\n", d.URL, d.Path)
	}
	return subcommands.ExitSuccess
}
