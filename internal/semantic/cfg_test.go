package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCFGBuiltForEveryFunction(t *testing.T) {
	model, sink := build(t, `
		function f(x) {
			if (x) {
				return 1;
			}
			return 2;
		}
	`, DefaultOptions())
	require.False(t, sink.HasErrors())
	require.Len(t, model.CFGs, 1)

	cfg := model.CFGs[0]
	require.NotEqual(t, cfg.Entry, cfg.Exit)

	// Both branches of the if must reach Exit via a return edge.
	returnBlocks := 0
	for _, blk := range cfg.Blocks {
		if blk.Kind == InstrReturn {
			returnBlocks++
		}
	}
	require.Equal(t, 2, returnBlocks)
}

func TestCFGSkippedWhenOptionDisabled(t *testing.T) {
	model, sink := build(t, `
		function f() { return 1; }
	`, Options{BuildCFG: false, SuggestSimilarNames: false})
	require.False(t, sink.HasErrors())
	require.Empty(t, model.CFGs)
}

func TestCFGThrowReachesExitWithErrorEdge(t *testing.T) {
	model, sink := build(t, `
		function f() {
			throw new Error("boom");
		}
	`, DefaultOptions())
	require.False(t, sink.HasErrors())
	require.Len(t, model.CFGs, 1)

	cfg := model.CFGs[0]
	found := false
	for _, blk := range cfg.Blocks {
		for _, e := range blk.Edges {
			if e.Kind == EdgeError && e.To == cfg.Exit {
				found = true
			}
		}
	}
	require.True(t, found, "a throw statement must connect to Exit via an error edge")
}

func TestCFGDotRendersWithoutPanicking(t *testing.T) {
	model, sink := build(t, `
		function f(x) {
			for (let i = 0; i < x; i++) {
				if (i === 2) { break; }
			}
			return x;
		}
	`, DefaultOptions())
	require.False(t, sink.HasErrors())
	require.Len(t, model.CFGs, 1)
	dot := model.CFGs[0].Dot()
	require.Contains(t, dot, "digraph CFG")
}
