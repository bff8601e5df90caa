package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/hashicorp/hcl/v2/hclwrite"
	slogctx "github.com/veqryn/slog-context"
	"github.com/zclconf/go-cty/cty"

	"github.com/tie/internal/renameio"

	"github.com/tie/mclaunch/runtime"
)

type InitCommand struct {
	OutputPath string
	Version    string
	Directory  string
	Force      bool
}

func (*InitCommand) Name() string     { return "init" }
func (*InitCommand) Synopsis() string { return "write a starter profile" }
func (*InitCommand) Usage() string {
	return `Usage: mclaunch init [-o launch.hcl] [-version id] [-dir path] [-f]

	Writes a profile that launches the given version offline. The
	version may be an id or one of the "release" and "snapshot" aliases.

Flags:
`
}

func (cmd *InitCommand) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.OutputPath, "o", defaultProfile, "profile output path")
	f.StringVar(&cmd.Version, "version", "release", "version to launch")
	f.StringVar(&cmd.Directory, "dir", ".minecraft", "game directory")
	f.BoolVar(&cmd.Force, "f", false, "overwrite an existing profile")
}

func (cmd *InitCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	log := slogctx.FromCtx(ctx)
	fpath := cmd.OutputPath
	if _, err := os.Stat(fpath); err == nil && !cmd.Force {
		log.Error("profile exists", "path", fpath)
		return subcommands.ExitFailure
	}

	file := hclwrite.NewEmptyFile()
	body := file.Body()
	body.SetAttributeValue("version", cty.StringVal(cmd.Version))
	body.SetAttributeValue("directory", cty.StringVal(cmd.Directory))
	body.SetAttributeValue("jvm_args", cty.ListVal([]cty.Value{
		cty.StringVal("-Xmx2G"),
	}))
	body.SetAttributeValue("vars", cty.ObjectVal(map[string]cty.Value{
		"auth_player_name": cty.StringVal("Player"),
	}))
	body.AppendNewline()
	rt := body.AppendNewBlock("runtime", nil).Body()
	rt.SetAttributeValue("distribution", cty.StringVal(runtime.Adoptium))

	if err := renameio.WriteFile(fpath, hclwrite.Format(file.Bytes()), 0644); err != nil {
		log.Error("write file", "path", fpath, "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
