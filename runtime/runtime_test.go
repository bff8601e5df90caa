package runtime_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tie/mclaunch/models"
	"github.com/tie/mclaunch/rules"
	"github.com/tie/mclaunch/runtime"
)

func TestLookup(t *testing.T) {
	p := runtime.Provisioner{Platform: rules.Linux}
	b, err := p.Lookup(17)
	require.NoError(t, err)
	assert.Equal(t, models.UnpackTarGz, b.Method)

	b, err = runtime.Provisioner{Distribution: runtime.Adoptium, Platform: rules.Windows}.Lookup(8)
	require.NoError(t, err)
	assert.Equal(t, models.UnpackZip, b.Method)

	_, err = p.Lookup(11)
	assert.ErrorIs(t, err, runtime.ErrRuntimeNotFound)

	_, err = runtime.Provisioner{Distribution: "zulu", Platform: rules.Linux}.Lookup(17)
	assert.ErrorIs(t, err, runtime.ErrRuntimeNotFound)

	_, err = runtime.Provisioner{}.Lookup(17)
	assert.ErrorIs(t, err, models.ErrUnsupportedPlatform)
}

func TestDownload(t *testing.T) {
	dir := t.TempDir()
	p := runtime.Provisioner{Platform: rules.Linux}
	d, err := p.Download(21, dir)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.NotNil(t, d.Unpack)
	assert.Equal(t, dir, d.Unpack.Dir)
	assert.True(t, d.Unpack.DeleteAfter)
	assert.NotEmpty(t, d.SHA256)

	exe, err := p.Executable(21, dir)
	require.NoError(t, err)
	assert.Equal(t, "java", filepath.Base(exe))

	// installed: nothing to download
	b, err := p.Lookup(21)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, b.Release), 0755))
	d, err = p.Download(21, dir)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestExecutableWindows(t *testing.T) {
	exe, err := runtime.Provisioner{Platform: rules.Windows}.Executable(17, "rt")
	require.NoError(t, err)
	assert.Equal(t, "java.exe", filepath.Base(exe))
}
