// Package classpath turns descriptor libraries into download targets and an
// ordered, deduplicated classpath.
package classpath

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/tie/mclaunch/models"
	"github.com/tie/mclaunch/placeholder"
	"github.com/tie/mclaunch/rules"
)

// DefaultArch is substituted for ${arch} in native classifier keys.
const DefaultArch = "x64"

// Result is the resolved library set.
type Result struct {
	// Downloads preserves library order. Native classifiers follow the
	// primary artifact of their library.
	Downloads []models.Download
	Classpath *Classpath
}

// Resolver resolves libraries for one platform.
type Resolver struct {
	Platform rules.Platform
	Arch     string
	Logger   *slog.Logger
}

// Resolve walks libs in order. Libraries ruled out for the platform and
// missing native classifiers are logged and skipped. A malformed coordinate
// or natives requested on an unsupported platform fails the whole call.
//
// Downloads are unique by destination path; the first occurrence wins.
func (r *Resolver) Resolve(libs []models.Library, destDir, nativesDir string) (*Result, error) {
	res := &Result{Classpath: NewClasspath()}
	seen := make(map[string]bool)
	add := func(d models.Download) {
		if seen[d.Path] {
			r.logger().Debug("duplicate download", "path", d.Path)
			return
		}
		seen[d.Path] = true
		res.Downloads = append(res.Downloads, d)
	}
	for _, lib := range libs {
		if lib.Downloads == nil {
			d, err := r.coordinate(lib, destDir)
			if err != nil {
				return nil, err
			}
			res.Classpath.Add(d.Path)
			add(d)
			continue
		}

		if d, ok := r.artifact(lib, destDir); ok {
			res.Classpath.Add(d.Path)
			add(d)
		}

		d, ok, err := r.native(lib, destDir, nativesDir)
		if err != nil {
			return nil, err
		}
		if ok {
			add(d)
		}
	}
	return res, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Resolver) arch() string {
	if r.Arch != "" {
		return r.Arch
	}
	return DefaultArch
}

func (r *Resolver) artifact(lib models.Library, destDir string) (models.Download, bool) {
	a := lib.Downloads.Artifact
	if a == nil {
		r.logger().Debug("library has no primary artifact", "library", lib.Name)
		return models.Download{}, false
	}
	if lib.Rules != nil && !rules.DecideAll(lib.Rules, r.Platform, nil) {
		r.logger().Info("library not allowed by platform", "library", lib.Name, "platform", r.Platform)
		return models.Download{}, false
	}
	return models.Download{
		URL:  a.URL,
		Path: filepath.Join(destDir, filepath.FromSlash(a.Path)),
		SHA1: a.SHA1,
		Size: a.Size,
	}, true
}

func (r *Resolver) native(lib models.Library, destDir, nativesDir string) (models.Download, bool, error) {
	if lib.Natives == nil {
		r.logger().Debug("library has no natives", "library", lib.Name)
		return models.Download{}, false, nil
	}
	if !r.Platform.Supported() {
		return models.Download{}, false, fmt.Errorf("natives for %q: %w", lib.Name, models.ErrUnsupportedPlatform)
	}
	if lib.Downloads.Classifiers == nil {
		r.logger().Info("no classifier", "library", lib.Name)
		return models.Download{}, false, nil
	}
	tmpl, ok := lib.Natives[r.Platform.String()]
	if !ok {
		r.logger().Info("no native classifier", "library", lib.Name, "platform", r.Platform)
		return models.Download{}, false, nil
	}
	key := placeholder.FillSingle(tmpl, "arch", r.arch())
	a, ok := lib.Downloads.Classifiers[key]
	if !ok {
		r.logger().Info("no native classifier", "library", lib.Name, "classifier", key)
		return models.Download{}, false, nil
	}
	d := models.Download{
		URL:  a.URL,
		Path: filepath.Join(destDir, filepath.FromSlash(a.Path)),
		SHA1: a.SHA1,
		Size: a.Size,
		Unpack: &models.Unpack{
			Method: models.UnpackZip,
			Dir:    nativesDir,
		},
	}
	if lib.Extract != nil {
		d.Unpack.Exclude = lib.Extract.Exclude
	}
	return d, true, nil
}

func (r *Resolver) coordinate(lib models.Library, destDir string) (models.Download, error) {
	c, err := ParseCoordinate(lib.Name)
	if err != nil {
		return models.Download{}, err
	}
	return models.Download{
		URL:  c.URL(lib.URL),
		Path: filepath.Join(destDir, filepath.FromSlash(c.Path())),
		SHA1: lib.SHA1,
		Size: lib.Size,
	}, nil
}
