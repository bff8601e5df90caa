package command

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tie/mclaunch/placeholder"
)

// Fill expands every token against ctx. Tokens are filled concurrently
// into their own slot, so output order matches input order. A token that
// cannot be filled keeps its literal text.
func Fill(tokens []string, ctx placeholder.Context) []string {
	out := make([]string, len(tokens))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, tok := range tokens {
		g.Go(func() error {
			filled, err := placeholder.Fill(tok, ctx)
			if err != nil {
				filled = tok
			}
			out[i] = filled
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Assemble fills both phases and returns jvm ++ extra ++ game.
func Assemble(t Templates, ctx placeholder.Context, extra []string) []string {
	jvm := Fill(t.JVM, ctx)
	game := Fill(t.Game, ctx)
	out := make([]string, 0, len(jvm)+len(extra)+len(game))
	out = append(out, jvm...)
	out = append(out, extra...)
	return append(out, game...)
}
