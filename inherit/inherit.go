// Package inherit resolves a chain of version descriptors into one
// effective descriptor.
package inherit

import (
	"context"
	"fmt"
	"strings"

	"github.com/tie/mclaunch/models"
)

// Loader returns the descriptor named by an id or a local path.
// A missing descriptor is reported with models.ErrVersionNotFound.
type Loader interface {
	Load(ctx context.Context, ref string) (*models.VersionDescriptor, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref string) (*models.VersionDescriptor, error)

func (f LoaderFunc) Load(ctx context.Context, ref string) (*models.VersionDescriptor, error) {
	return f(ctx, ref)
}

// CycleError is returned when a descriptor inherits from itself,
// directly or through its ancestors.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("inheritance cycle: %s", strings.Join(e.Chain, " -> "))
}

// Resolve loads ref and merges its whole inheritance chain. Descriptors
// without a parent are returned as loaded.
func Resolve(ctx context.Context, ref string, loader Loader) (*models.VersionDescriptor, error) {
	return resolve(ctx, ref, loader, nil)
}

func resolve(ctx context.Context, ref string, loader Loader, chain []string) (*models.VersionDescriptor, error) {
	d, err := loader.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", ref, err)
	}
	for _, id := range chain {
		if id == d.ID {
			cycle := append(append([]string(nil), chain...), d.ID)
			return nil, &CycleError{Chain: cycle}
		}
	}
	if d.InheritsFrom == "" {
		return d, nil
	}
	chain = append(chain, d.ID)
	parent, err := resolve(ctx, d.InheritsFrom, loader, chain)
	if err != nil {
		return nil, fmt.Errorf("resolve parent of %q: %w", d.ID, err)
	}
	return Merge(parent, d)
}

// Merge combines child into parent and returns a new descriptor. Parent
// libraries come first. Legacy arguments are joined with a space, structured
// arguments are concatenated per phase. The child's id and main class win.
// Neither input is modified.
func Merge(parent, child *models.VersionDescriptor) (*models.VersionDescriptor, error) {
	merged := *parent
	merged.InheritsFrom = ""

	merged.Libraries = make([]models.Library, 0, len(parent.Libraries)+len(child.Libraries))
	merged.Libraries = append(merged.Libraries, parent.Libraries...)
	merged.Libraries = append(merged.Libraries, child.Libraries...)

	switch {
	case child.MinecraftArguments != nil:
		base, ok := parent.LegacyArguments()
		if !ok {
			return nil, fmt.Errorf("merge %q into %q: %w", child.ID, parent.ID, models.ErrMissingLegacyArguments)
		}
		joined := base + " " + *child.MinecraftArguments
		merged.MinecraftArguments = &joined
	case child.Arguments != nil:
		if parent.Arguments == nil {
			return nil, fmt.Errorf("merge %q into %q: %w", child.ID, parent.ID, models.ErrMissingArguments)
		}
		merged.Arguments = &models.Arguments{
			Game: concat(parent.Arguments.Game, child.Arguments.Game),
			JVM:  concat(parent.Arguments.JVM, child.Arguments.JVM),
		}
	default:
		if parent.Arguments != nil {
			merged.Arguments = &models.Arguments{
				Game: concat(parent.Arguments.Game, nil),
				JVM:  concat(parent.Arguments.JVM, nil),
			}
		}
	}

	merged.ID = child.ID
	merged.MainClass = child.MainClass
	return &merged, nil
}

func concat(a, b []models.Argument) []models.Argument {
	out := make([]models.Argument, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
