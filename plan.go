// Package mclaunch resolves a version descriptor chain into everything a
// launch needs: the download set, the classpath and the final command.
package mclaunch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"

	"github.com/tie/internal/robustio"

	"github.com/tie/mclaunch/assets"
	"github.com/tie/mclaunch/classpath"
	"github.com/tie/mclaunch/command"
	"github.com/tie/mclaunch/inherit"
	"github.com/tie/mclaunch/models"
	"github.com/tie/mclaunch/placeholder"
	"github.com/tie/mclaunch/rules"
	"github.com/tie/mclaunch/runtime"
)

const (
	LauncherName    = "mclaunch"
	LauncherVersion = "0.1.0"
)

// Options configure Prepare. Everything a resolution depends on is passed
// here explicitly.
type Options struct {
	Layout   Layout
	Platform rules.Platform
	Features rules.Features

	// Vars are placeholder values; they override the defaults Prepare
	// derives from the descriptor and layout.
	Vars map[string]string

	// JVMArgs are extra runtime options, e.g. -Xmx2G.
	JVMArgs []string

	Runtime runtime.Provisioner
	// Java overrides the provisioned runtime executable.
	Java string

	Logger *slog.Logger
}

// Plan is a resolved launch.
type Plan struct {
	Descriptor *models.VersionDescriptor
	Libraries  *classpath.Result
	Templates  command.Templates

	// Downloads are the libraries, the client jar, the asset index and
	// the runtime when one must be installed.
	Downloads []models.Download

	Java      string
	JavaMajor int

	opts Options
}

// Prepare resolves ref through loader into a Plan.
func Prepare(ctx context.Context, ref string, loader inherit.Loader, opts Options) (*Plan, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	d, err := inherit.Resolve(ctx, ref, loader)
	if err != nil {
		return nil, err
	}
	l := opts.Layout
	r := classpath.Resolver{Platform: opts.Platform, Logger: opts.Logger}
	libs, err := r.Resolve(d.Libraries, l.Libraries(), l.Natives(d.ID))
	if err != nil {
		return nil, fmt.Errorf("resolve libraries of %q: %w", d.ID, err)
	}

	p := &Plan{
		Descriptor: d,
		Libraries:  libs,
		Templates:  command.Build(d, opts.Platform, opts.Features).WithJVMOptions(opts.JVMArgs...),
		JavaMajor:  d.Java.MajorVersion,
		opts:       opts,
	}
	if p.JavaMajor == 0 {
		p.JavaMajor = command.LegacyRuntime
	}

	p.Downloads = append(p.Downloads, libs.Downloads...)
	if c := d.Downloads.Client; c != nil {
		p.Downloads = append(p.Downloads, models.Download{
			URL:  c.URL,
			Path: l.ClientJar(d.ID),
			SHA1: c.SHA1,
			Size: c.Size,
		})
	}
	if d.AssetIndex.URL != "" {
		p.Downloads = append(p.Downloads, assets.IndexDownload(d, l.Assets()))
	}

	if opts.Java != "" {
		p.Java = opts.Java
		return p, nil
	}
	rt, err := opts.Runtime.Download(p.JavaMajor, l.Runtimes())
	if err != nil {
		return nil, fmt.Errorf("runtime %d: %w", p.JavaMajor, err)
	}
	if rt != nil {
		p.Downloads = append(p.Downloads, *rt)
	}
	p.Java, err = opts.Runtime.Executable(p.JavaMajor, l.Runtimes())
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Classpath is the library classpath followed by the client jar.
func (p *Plan) Classpath() string {
	cp := classpath.NewClasspath()
	for _, e := range p.Libraries.Classpath.Paths() {
		cp.Add(e)
	}
	if p.Descriptor.Downloads.Client != nil {
		cp.Add(p.opts.Layout.ClientJar(p.Descriptor.ID))
	}
	return cp.Join(p.opts.Platform.ClasspathSeparator())
}

// Context returns the placeholder values of this launch.
func (p *Plan) Context() placeholder.Context {
	d := p.Descriptor
	l := p.opts.Layout
	assetIndex := d.Assets
	if assetIndex == "" {
		assetIndex = d.AssetIndex.ID
	}
	ctx := placeholder.Context{
		"natives_directory":   l.Natives(d.ID),
		"library_directory":   l.Libraries(),
		"classpath_separator": p.opts.Platform.ClasspathSeparator(),
		"classpath":           p.Classpath(),
		"main_class":          d.MainClass,
		"launcher_name":       LauncherName,
		"launcher_version":    LauncherVersion,
		"version_name":        d.ID,
		"version_type":        d.Type,
		"game_directory":      l.Root,
		"assets_root":         l.Assets(),
		"game_assets":         filepath.Join(l.Assets(), "virtual", "legacy"),
		"assets_index_name":   assetIndex,
		"auth_player_name":    "Player",
		"auth_uuid":           "00000000-0000-0000-0000-000000000000",
		"auth_access_token":   "0",
		"auth_session":        "0",
		"auth_xuid":           "",
		"clientid":            "",
		"user_type":           "legacy",
		"user_properties":     "{}",
	}
	maps.Copy(ctx, p.opts.Vars)
	return ctx
}

// Arguments returns the filled argument vector. Options.JVMArgs sit before
// the main class, not between the jvm and game tokens.
func (p *Plan) Arguments() []string {
	return command.Assemble(p.Templates, p.Context(), nil)
}

// Invocation prepares the arguments for the process spawner, using an
// argument file in dir unless the runtime is too old for one.
func (p *Plan) Invocation(dir string) (*command.Invocation, error) {
	return command.Prepare(p.Arguments(), p.JavaMajor, dir)
}

// AssetDownloads reads the downloaded asset index and returns the missing
// asset objects.
func (p *Plan) AssetDownloads() ([]models.Download, error) {
	d := p.Descriptor
	if d.AssetIndex.URL == "" {
		return nil, nil
	}
	fpath := assets.IndexPath(d, p.opts.Layout.Assets())
	data, err := robustio.ReadFile(fpath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("asset index %q not downloaded: %w", fpath, err)
	}
	if err != nil {
		return nil, err
	}
	idx, err := assets.ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", fpath, err)
	}
	return assets.Resolver{}.Objects(idx, p.opts.Layout.Assets())
}
