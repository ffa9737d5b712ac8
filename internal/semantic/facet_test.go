package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueAndTypeFacetsCoexist(t *testing.T) {
	// A const and an interface of the same name live in independent
	// facets of the same scope (spec §3.4) and must not conflict.
	_, sink := build(t, `
		interface Box {}
		const Box = { make() { return {}; } };
	`, DefaultOptions())

	require.False(t, sink.HasErrors(), "a value binding and a type binding of the same name must not conflict")

	model, _ := build(t, `
		interface Box {}
		const Box = { make() { return {}; } };
	`, DefaultOptions())

	var value, typ *Symbol
	for i := range model.Symbols {
		s := &model.Symbols[i]
		if s.Name.String() != "Box" {
			continue
		}
		if s.Flags.Has(SymbolConst) {
			value = s
		}
		if s.Flags.Has(SymbolTypeOnly) {
			typ = s
		}
	}
	require.NotNil(t, value)
	require.NotNil(t, typ)
	require.NotSame(t, value, typ)
}

func TestTypeAliasConflictsWithTypeAlias(t *testing.T) {
	_, sink := build(t, `
		type Pair = [number, number];
		type Pair = [string, string];
	`, DefaultOptions())
	require.True(t, sink.HasErrors())
}
