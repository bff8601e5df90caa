package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/hashicorp/hcl/v2/hclwrite"
	slogctx "github.com/veqryn/slog-context"
	"github.com/zclconf/go-cty/cty"

	"github.com/tie/internal/renameio"

	"github.com/tie/mclaunch/models"
)

type SumsCommand struct {
	OutputPath   string
	DisableCache bool
}

func (*SumsCommand) Name() string     { return "sums" }
func (*SumsCommand) Synopsis() string { return "generate checksum profile" }
func (*SumsCommand) Usage() string {
	return `Usage: mclaunch sums [-o sums.hcl] [-nocache] [profile paths]

	Generates a profile with a "check" block for each distinct URL the
	launch downloads. Passing it along with the other profiles pins
	the files that publish no checksum of their own.

Flags:
`
}

func (cmd *SumsCommand) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.DisableCache, "nocache", false, "disable filesystem cache")
	f.StringVar(&cmd.OutputPath, "o", "sums.hcl", "profile output path")
}

func (cmd *SumsCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	log := slogctx.FromCtx(ctx)
	s, err := openSession(ctx, f.Args(), cmd.DisableCache)
	if err != nil {
		log.Error("open session", "err", err)
		return subcommands.ExitFailure
	}
	defer s.Close()
	s.sumsCache()

	p, err := s.plan(ctx)
	if err != nil {
		log.Error("resolve", "version", s.profile.Version, "err", err)
		return subcommands.ExitFailure
	}

	sumsFile := hclwrite.NewEmptyFile()
	sb := SumsBuilder{
		Body: sumsFile.Body(),
		seen: map[string]bool{},
	}
	for _, d := range p.Downloads {
		if sb.seen[d.URL] {
			continue
		}
		sums, err := s.fetcher.Sums(ctx, d)
		if err != nil {
			log.Error("sum", "url", d.URL, "err", err)
			return subcommands.ExitFailure
		}
		if len(sums) <= 0 {
			continue
		}
		sb.Add(d, sums)
	}

	fpath := cmd.OutputPath
	if err := renameio.WriteFile(fpath, sumsFile.Bytes(), 0644); err != nil {
		log.Error("write file", "path", fpath, "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type SumsBuilder struct {
	*hclwrite.Body
	Length int

	seen map[string]bool
}

func (b *SumsBuilder) Add(d models.Download, sums []string) {
	if b.seen != nil {
		b.seen[d.URL] = true
	}
	if b.Length > 0 {
		b.AppendNewline()
	}
	b.Length++

	block := b.AppendNewBlock("check", []string{d.URL})
	body := block.Body()

	vals := make([]cty.Value, len(sums))
	for i, sum := range sums {
		vals[i] = cty.StringVal(sum)
	}
	body.SetAttributeValue("sums", cty.ListVal(vals))
}
