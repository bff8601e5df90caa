// Package profile reads HCL launch profiles and merges them into the
// settings of one launch.
package profile

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/tie/mclaunch/models"
	"github.com/tie/mclaunch/profile/hclspec"
	"github.com/tie/mclaunch/rules"
)

// Profile holds merged launch settings.
type Profile struct {
	Version   string
	Directory string
	Features  rules.Features
	Vars      map[string]string
	JVMArgs   []string
	Env       map[string]string

	Distribution string
	Java         string

	MaxRedirects  int
	MaxConcurrent int

	// Pins maps a URL to its expected "name:hex" sums.
	Pins map[string][]string
}

// Parse parses and decodes a single profile source.
func Parse(p *hclparse.Parser, src []byte, filename string) (hclspec.Profile, hcl.Diagnostics) {
	var m hclspec.Profile
	file, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return m, diags
	}
	diags = append(diags, gohcl.DecodeBody(file.Body, nil, &m)...)
	return m, diags
}

// Merge folds profiles in order. Later scalar settings win, maps are merged
// key by key, jvm arguments are appended and check sums are collected.
func Merge(ms []hclspec.Profile) Profile {
	p := Profile{
		Features: rules.Features{},
		Vars:     map[string]string{},
		Env:      map[string]string{},
		Pins:     map[string][]string{},
	}
	for _, m := range ms {
		setString(&p.Version, m.Version)
		setString(&p.Directory, m.Directory)
		for k, v := range m.Features {
			p.Features[k] = v
		}
		for k, v := range m.Vars {
			p.Vars[k] = v
		}
		for k, v := range m.Env {
			p.Env[k] = v
		}
		p.JVMArgs = append(p.JVMArgs, m.JVMArgs...)
		if r := m.Runtime; r != nil {
			setString(&p.Distribution, r.Distribution)
			setString(&p.Java, r.Java)
		}
		if d := m.Download; d != nil {
			setInt(&p.MaxRedirects, d.MaxRedirects)
			setInt(&p.MaxConcurrent, d.MaxConcurrent)
		}
		for _, c := range m.Checks {
			p.Pins[c.URL] = append(p.Pins[c.URL], c.Sums...)
		}
	}
	return p
}

// Pin fills missing expected checksums of ds from the profile's check
// blocks. Checksums published by the descriptor are kept.
func (p Profile) Pin(ds []models.Download) []models.Download {
	out := make([]models.Download, len(ds))
	for i, d := range ds {
		for _, sum := range p.Pins[d.URL] {
			name, hex, ok := strings.Cut(sum, ":")
			if !ok {
				continue
			}
			switch {
			case name == "sha1" && d.SHA1 == "":
				d.SHA1 = strings.ToLower(hex)
			case name == "sha256" && d.SHA256 == "":
				d.SHA256 = strings.ToLower(hex)
			}
		}
		out[i] = d
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
