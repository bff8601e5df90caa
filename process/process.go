// Package process spawns the launched runtime and forwards its output line
// by line.
package process

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"
)

// Command describes a process to run.
type Command struct {
	Path string
	Args []string
	Dir  string

	// Env overrides variables of the current environment.
	Env map[string]string

	// Stdout and Stderr receive complete lines without the line ending.
	// Nil callbacks discard the stream.
	Stdout func(line string)
	Stderr func(line string)
}

// Run starts c and waits for it and for both output streams to drain.
func Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = environ(os.Environ(), c.Env)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	slogctx.FromCtx(ctx).Debug("starting process", "path", c.Path, "args", len(c.Args))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q: %w", c.Path, err)
	}

	var g errgroup.Group
	g.Go(func() error { return forward(stdout, c.Stdout) })
	g.Go(func() error { return forward(stderr, c.Stderr) })
	streamErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("run %q: %w", c.Path, err)
	}
	return streamErr
}

func forward(r io.Reader, fn func(string)) error {
	if fn == nil {
		_, err := io.Copy(io.Discard, r)
		return err
	}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	for s.Scan() {
		fn(s.Text())
	}
	return s.Err()
}

// environ applies overrides to base, keeping the base order and appending
// new keys sorted.
func environ(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(overrides))
	seen := make(map[string]bool, len(overrides))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if v, ok := overrides[key]; ok {
			out = append(out, key+"="+v)
			seen[key] = true
			continue
		}
		out = append(out, kv)
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}
	return out
}
