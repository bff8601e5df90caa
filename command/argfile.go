package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/tie/internal/robustio"
)

// LegacyRuntime is the runtime major version without @file support.
const LegacyRuntime = 8

const argFileSlots = 21

// Invocation is what is handed to the process spawner: either the literal
// argument vector or a single @file reference.
type Invocation struct {
	Args []string

	// ArgFile is the indirection file behind Args, if any.
	ArgFile string
}

// Cleanup removes the indirection file. It is the caller's job to call it
// once the process has exited.
func (inv *Invocation) Cleanup() error {
	if inv.ArgFile == "" {
		return nil
	}
	err := os.Remove(inv.ArgFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Prepare returns the invocation for a runtime of the given major version.
// Runtime 8 gets the arguments literally. Newer runtimes get @path with the
// arguments written one per line to a fresh file in dir, or in the default
// temp directory when dir is empty.
func Prepare(args []string, javaMajor int, dir string) (*Invocation, error) {
	if javaMajor == LegacyRuntime {
		return &Invocation{Args: append([]string(nil), args...)}, nil
	}
	if dir == "" {
		dir = os.TempDir()
	}
	f, err := createArgFile(dir)
	if err != nil {
		return nil, err
	}
	name := f.Name()
	err = writeArgs(f, args)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(name)
		return nil, fmt.Errorf("write %q: %w", name, err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, err
	}
	return &Invocation{Args: []string{"@" + abs}, ArgFile: abs}, nil
}

// createArgFile creates command-run-<n>.tmp for a random free n in 0..20,
// falling back to a random suffix when every slot is taken.
func createArgFile(dir string) (*os.File, error) {
	for _, n := range rand.Perm(argFileSlots) {
		name := filepath.Join(dir, fmt.Sprintf("command-run-%d.tmp", n))
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		return f, err
	}
	return os.CreateTemp(dir, "command-run-*.tmp")
}

func writeArgs(w io.Writer, args []string) error {
	bw := bufio.NewWriter(w)
	for _, arg := range args {
		if _, err := fmt.Fprintln(bw, quoteArg(arg)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// quoteArg quotes values the runtime would otherwise split on whitespace.
// Inside quotes backslashes are escape characters.
func quoteArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\r\n\"'") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}

func unquoteArg(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	r := strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\n`, "\n", `\r`, "\r", `\t`, "\t")
	return r.Replace(s[1 : len(s)-1])
}

// ReadArgFile reads an indirection file back into its arguments, stripping
// surrounding double quotes.
func ReadArgFile(path string) ([]string, error) {
	data, err := robustio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	args := make([]string, len(lines))
	for i, line := range lines {
		args[i] = unquoteArg(line)
	}
	return args, nil
}
