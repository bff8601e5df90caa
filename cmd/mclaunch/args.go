package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	slogctx "github.com/veqryn/slog-context"
)

type ArgsCommand struct {
	DisableCache bool
}

func (*ArgsCommand) Name() string     { return "args" }
func (*ArgsCommand) Synopsis() string { return "print the launch command" }
func (*ArgsCommand) Usage() string {
	return `Usage: mclaunch args [-nocache] [profile paths]

	Prints the runtime executable and the filled argument vector,
	one argument per line.

Flags:
`
}

func (cmd *ArgsCommand) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.DisableCache, "nocache", false, "disable filesystem cache")
}

func (cmd *ArgsCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
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
	fmt.Println(p.Java)
	for _, arg := range p.Arguments() {
		fmt.Println(arg)
	}
	return subcommands.ExitSuccess
}
