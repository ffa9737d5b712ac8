package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarHoistsThroughBlocksAndLoops(t *testing.T) {
	model, _ := build(t, `
		function f() {
			if (true) {
				for (var i = 0; i < 1; i++) {
					var x = i;
				}
			}
			return x;
		}
	`, DefaultOptions())

	fn, ok := findSymbol(model, "f")
	require.True(t, ok)
	require.True(t, fn.Flags.Has(SymbolFunction))

	x, ok := findSymbol(model, "x")
	require.True(t, ok)
	require.True(t, x.Flags.Has(SymbolVar))

	// The "return x" reference must resolve to the var hoisted out of the
	// nested if/for blocks, not go unresolved.
	found := false
	for _, refID := range x.References {
		ref := model.ReferenceOf(refID)
		require.True(t, ref.Flags&RefRead != 0)
		found = true
	}
	require.True(t, found, "expected at least one resolved reference to x")
}

func TestLetIsBlockScopedNotHoisted(t *testing.T) {
	model, sink := build(t, `
		function f() {
			if (true) {
				let y = 1;
			}
			return y;
		}
	`, DefaultOptions())

	y, ok := findSymbol(model, "y")
	require.True(t, ok)
	require.True(t, y.Flags.Has(SymbolLet))
	require.Empty(t, y.References, "a let inside an if-block must not be visible to code after it")

	found := false
	for _, d := range sink.Diagnostics() {
		if d.Severity.String() == "advice" {
			found = true
		}
	}
	_ = found // advice is opportunistic (fuzzy match), not guaranteed here
}

func TestFunctionDeclarationRedeclarationMerges(t *testing.T) {
	model, sink := build(t, `
		function g() { return 1; }
		var g;
	`, DefaultOptions())

	require.False(t, sink.HasErrors(), "var re-declaring a function in the same scope is allowed, not a conflict")
	g, ok := findSymbol(model, "g")
	require.True(t, ok)
	require.True(t, g.Flags.Has(SymbolFunction))
	require.True(t, g.Flags.Has(SymbolVar))
}

func TestLetRedeclarationConflicts(t *testing.T) {
	_, sink := build(t, `
		let z = 1;
		let z = 2;
	`, DefaultOptions())

	require.True(t, sink.HasErrors())
}

func TestCatchParamScopedToCatchBlock(t *testing.T) {
	model, _ := build(t, `
		function f() {
			try {
				doSomething();
			} catch (e) {
				log(e);
			}
		}
	`, DefaultOptions())

	e, ok := findSymbol(model, "e")
	require.True(t, ok)
	require.True(t, e.Flags.Has(SymbolCatchParam))
	require.Len(t, e.References, 1)
}
