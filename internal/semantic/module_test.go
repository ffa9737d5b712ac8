package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModuleRecordCollectsImportsAndExports(t *testing.T) {
	model, sink := build(t, `
		import React, { useState as useS } from "react";
		import * as path from "path";

		export const value = 1;
		export { value as exportedValue };
		export default function main() {}
	`, DefaultOptions())
	require.False(t, sink.HasErrors())

	rec := model.Module
	require.Len(t, rec.Imports, 3)

	var sawDefault, sawNamed, sawNamespace bool
	for _, imp := range rec.Imports {
		switch imp.Kind {
		case ImportDefault:
			sawDefault = true
			require.Equal(t, "react", imp.Request)
		case ImportNamed:
			sawNamed = true
			require.Equal(t, "useState", imp.Imported)
		case ImportNamespace:
			sawNamespace = true
			require.Equal(t, "path", imp.Request)
		}
	}
	require.True(t, sawDefault)
	require.True(t, sawNamed)
	require.True(t, sawNamespace)

	require.True(t, rec.HasDefaultExport)
	require.Equal(t, "main", rec.DefaultLocal.String())

	value, ok := findSymbol(model, "value")
	require.True(t, ok)
	require.True(t, value.Flags.Has(SymbolExport), "a name re-exported under an alias must still be marked exported")

	_, ok = rec.ExportedBindings["exportedValue"]
	require.True(t, ok)
	_, ok = rec.ExportedBindings["default"]
	require.True(t, ok)
}

func TestReExportDoesNotMarkLocalSymbol(t *testing.T) {
	model, sink := build(t, `
		export { something } from "./other";
	`, DefaultOptions())
	require.False(t, sink.HasErrors())
	require.Len(t, model.Module.Exports, 1)
	require.Equal(t, "./other", model.Module.Exports[0].Request)
	_, ok := findSymbol(model, "something")
	require.False(t, ok, "a pure re-export names no local binding in this file")
}
