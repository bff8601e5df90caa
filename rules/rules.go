// Package rules evaluates the platform and feature conditions attached to
// libraries and argument tokens.
package rules

import "github.com/tie/mclaunch/models"

const actionAllow = "allow"

// Features is the caller's feature-option map, e.g. has_custom_resolution.
type Features map[string]bool

// Decide reports whether a single rule is satisfied on p.
//
// A rule with an os block but no os name is never satisfied. Real
// descriptors only narrow by name; arch and version alone are treated
// conservatively.
func Decide(rule models.Rule, p Platform) bool {
	allow := rule.Action == actionAllow
	if rule.OS == nil {
		return allow
	}
	name := rule.OS.Name
	if name == "" {
		return false
	}
	match := p.Supported() && name == p.String()
	return (allow && match) || (!allow && !match)
}

// DecideAll reports whether every rule is satisfied on p and every feature
// requirement is present in features with the same value. No rules means
// unconditional allow.
func DecideAll(rs []models.Rule, p Platform, features Features) bool {
	for _, rule := range rs {
		if !Decide(rule, p) {
			return false
		}
		for name, want := range rule.Features {
			got, ok := features[name]
			if !ok || got != want {
				return false
			}
		}
	}
	return true
}
