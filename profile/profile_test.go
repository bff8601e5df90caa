package profile_test

import (
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tie/mclaunch/models"
	"github.com/tie/mclaunch/profile"
	"github.com/tie/mclaunch/profile/hclspec"
	"github.com/tie/mclaunch/rules"
)

const base = `
version   = "1.20.1"
directory = ".minecraft"
jvm_args  = ["-Xmx2G"]

features = {
  has_custom_resolution = true
}

vars = {
  auth_player_name  = "Steve"
  resolution_width  = "1280"
}

env = {
  MESA_GL_VERSION_OVERRIDE = "4.5"
}

runtime {
  distribution = "adopt"
}

download {
  max_concurrent = 4
}
`

const override = `
version  = "1.19.4"
jvm_args = ["-XX:+UseG1GC"]

vars = {
  auth_player_name = "Alex"
}

runtime {
  java = "/usr/lib/jvm/java-17/bin/java"
}

check "https://libraries.minecraft.net/a.jar" {
  sums = ["sha1:ABCDEF", "size:10"]
}
`

func parse(t *testing.T, srcs ...string) []hclspec.Profile {
	t.Helper()
	p := hclparse.NewParser()
	ms := make([]hclspec.Profile, 0, len(srcs))
	for i, src := range srcs {
		m, diags := profile.Parse(p, []byte(src), "profile"+string(rune('a'+i))+".hcl")
		require.False(t, diags.HasErrors(), diags.Error())
		ms = append(ms, m)
	}
	return ms
}

func TestParse(t *testing.T) {
	ms := parse(t, base)
	m := ms[0]
	assert.Equal(t, "1.20.1", m.Version)
	assert.Equal(t, map[string]bool{"has_custom_resolution": true}, m.Features)
	require.NotNil(t, m.Runtime)
	assert.Equal(t, "adopt", m.Runtime.Distribution)
	require.NotNil(t, m.Download)
	assert.Equal(t, 4, m.Download.MaxConcurrent)
	assert.Empty(t, m.Checks)
}

func TestParseErrors(t *testing.T) {
	p := hclparse.NewParser()
	_, diags := profile.Parse(p, []byte(`version = `), "broken.hcl")
	assert.True(t, diags.HasErrors())

	_, diags = profile.Parse(p, []byte(`unknown = 1`), "unknown.hcl")
	assert.True(t, diags.HasErrors())
}

func TestMerge(t *testing.T) {
	p := profile.Merge(parse(t, base, override))
	assert.Equal(t, "1.19.4", p.Version)
	assert.Equal(t, ".minecraft", p.Directory)
	assert.Equal(t, []string{"-Xmx2G", "-XX:+UseG1GC"}, p.JVMArgs)
	assert.Equal(t, rules.Features{"has_custom_resolution": true}, p.Features)
	assert.Equal(t, map[string]string{
		"auth_player_name": "Alex",
		"resolution_width": "1280",
	}, p.Vars)
	assert.Equal(t, "4.5", p.Env["MESA_GL_VERSION_OVERRIDE"])
	assert.Equal(t, "adopt", p.Distribution)
	assert.Equal(t, "/usr/lib/jvm/java-17/bin/java", p.Java)
	assert.Equal(t, 4, p.MaxConcurrent)
	assert.Equal(t, 0, p.MaxRedirects)
	assert.Equal(t, []string{"sha1:ABCDEF", "size:10"}, p.Pins["https://libraries.minecraft.net/a.jar"])
}

func TestPin(t *testing.T) {
	p := profile.Merge(parse(t, override))
	ds := []models.Download{
		{URL: "https://libraries.minecraft.net/a.jar", Path: "a.jar"},
		{URL: "https://libraries.minecraft.net/a.jar", Path: "b.jar", SHA1: "0123"},
		{URL: "https://libraries.minecraft.net/c.jar", Path: "c.jar"},
	}
	got := p.Pin(ds)
	assert.Equal(t, "abcdef", got[0].SHA1)
	assert.Equal(t, "0123", got[1].SHA1)
	assert.Empty(t, got[2].SHA1)
	assert.Empty(t, ds[0].SHA1)
}
