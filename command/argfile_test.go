package command_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tie/mclaunch/command"
)

func TestPrepareLegacyRuntime(t *testing.T) {
	args := []string{"-cp", "a.jar", "Main"}
	inv, err := command.Prepare(args, command.LegacyRuntime, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, args, inv.Args)
	assert.Empty(t, inv.ArgFile)
	assert.NoError(t, inv.Cleanup())

	inv.Args[0] = "mutated"
	assert.Equal(t, "-cp", args[0])
}

func TestPrepareArgFile(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		"-Djava.library.path=/game/natives",
		"-cp", "a.jar:b.jar",
		"Main",
		"--username", "Steve",
		"--gameDir", "/path with spaces/.minecraft",
		`quote"d`,
		"",
	}
	inv, err := command.Prepare(args, 17, dir)
	require.NoError(t, err)
	require.Len(t, inv.Args, 1)
	assert.True(t, strings.HasPrefix(inv.Args[0], "@"))
	assert.Equal(t, inv.ArgFile, strings.TrimPrefix(inv.Args[0], "@"))
	assert.True(t, filepath.IsAbs(inv.ArgFile))
	assert.Equal(t, dir, filepath.Dir(inv.ArgFile))
	assert.Regexp(t, `^command-run-.*\.tmp$`, filepath.Base(inv.ArgFile))

	got, err := command.ReadArgFile(inv.ArgFile)
	require.NoError(t, err)
	assert.Equal(t, args, got)

	require.NoError(t, inv.Cleanup())
	_, err = os.Stat(inv.ArgFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoError(t, inv.Cleanup())
}

func TestPrepareDistinctFiles(t *testing.T) {
	dir := t.TempDir()
	seen := map[string]bool{}
	// more than the numbered slots
	for i := 0; i < 25; i++ {
		inv, err := command.Prepare([]string{"Main"}, 21, dir)
		require.NoError(t, err)
		assert.False(t, seen[inv.ArgFile], inv.ArgFile)
		seen[inv.ArgFile] = true
	}
}
