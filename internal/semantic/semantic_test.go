package semantic

import (
	"testing"

	"github.com/parsekit/parsekit/internal/arena"
	"github.com/parsekit/parsekit/internal/jsparser"
	"github.com/parsekit/parsekit/internal/logger"
	"github.com/parsekit/parsekit/internal/source"
	"github.com/stretchr/testify/require"
)

// build parses contents as a TypeScript+JSX module (the most permissive
// grammar superset) and runs the semantic builder over the result,
// failing the test immediately on any parse error so every other test
// can assume a clean Program to analyze.
func build(t *testing.T, contents string, opts Options) (*Model, *logger.Sink) {
	t.Helper()
	a := arena.New()
	sink := logger.NewSink()
	st := source.SourceType{Language: source.LanguageTS, ModuleKind: source.ModuleKindModule, Variant: source.VariantJSX}
	res := jsparser.Parse(a, sink, contents, st, jsparser.Options{})
	require.False(t, sink.HasErrors(), "unexpected parse errors: %+v", sink.Diagnostics())
	model := Build(a, sink, res.Program, opts)
	return model, sink
}

func findSymbol(m *Model, name string) (*Symbol, bool) {
	for i := range m.Symbols {
		if m.Symbols[i].Name.String() == name {
			return &m.Symbols[i], true
		}
	}
	return nil, false
}
