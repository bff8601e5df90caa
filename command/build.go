// Package command assembles the ordered runtime argument vector from a
// descriptor's argument templates.
package command

import (
	"strings"

	"github.com/tie/mclaunch/models"
	"github.com/tie/mclaunch/rules"
)

// Well known placeholders of the jvm phase.
const (
	MainClass        = "${main_class}"
	ClasspathToken   = "${classpath}"
	LibraryPathToken = "-Djava.library.path=${natives_directory}"
)

// Templates holds the raw, not yet filled argument tokens of both phases.
type Templates struct {
	Game []string
	JVM  []string
}

// Build flattens the descriptor arguments that apply on p with the given
// features. Legacy argument strings are split on whitespace and never rule
// filtered. The jvm template always ends with exactly one ${main_class}.
func Build(d *models.VersionDescriptor, p rules.Platform, features rules.Features) Templates {
	prefix := []string{LibraryPathToken, "-cp", ClasspathToken}

	if legacy, ok := d.LegacyArguments(); ok {
		return Templates{
			Game: strings.Fields(legacy),
			JVM:  append(prefix, MainClass),
		}
	}
	if d.Arguments == nil {
		return Templates{JVM: append(prefix, MainClass)}
	}

	jvm := FlattenJVM(d.Arguments.JVM, p, features)
	if !references(jvm, ClasspathToken) {
		jvm = append(prefix, jvm...)
	}
	return Templates{
		Game: Flatten(d.Arguments.Game, p, features),
		JVM:  jvm,
	}
}

// Flatten expands argument tokens into strings. Literals pass through,
// conditional tokens contribute their values only when their rules hold.
func Flatten(args []models.Argument, p rules.Platform, features rules.Features) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if arg.IsLiteral() {
			out = append(out, arg.Literal)
			continue
		}
		c := arg.Conditional
		if !rules.DecideAll(c.Rules, p, features) {
			continue
		}
		out = append(out, c.Value.Strings()...)
	}
	return out
}

// FlattenJVM is Flatten with ${main_class} appended unless it is already the
// last token.
func FlattenJVM(args []models.Argument, p rules.Platform, features rules.Features) []string {
	out := Flatten(args, p, features)
	if len(out) == 0 || out[len(out)-1] != MainClass {
		out = append(out, MainClass)
	}
	return out
}

func references(tokens []string, s string) bool {
	for _, t := range tokens {
		if strings.Contains(t, s) {
			return true
		}
	}
	return false
}

// WithJVMOptions returns a copy of t with opts inserted in front of the
// terminating ${main_class}, where the runtime still reads them as its own
// options.
func (t Templates) WithJVMOptions(opts ...string) Templates {
	jvm := make([]string, 0, len(t.JVM)+len(opts))
	n := len(t.JVM)
	if n > 0 && t.JVM[n-1] == MainClass {
		jvm = append(jvm, t.JVM[:n-1]...)
		jvm = append(jvm, opts...)
		jvm = append(jvm, MainClass)
	} else {
		jvm = append(jvm, t.JVM...)
		jvm = append(jvm, opts...)
	}
	return Templates{
		Game: append([]string(nil), t.Game...),
		JVM:  jvm,
	}
}
