package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSXIntrinsicTagIsNotAReference(t *testing.T) {
	model, sink := build(t, `
		function Page() {
			return <div className="a"><span /></div>;
		}
	`, DefaultOptions())
	require.False(t, sink.HasErrors())

	for _, r := range model.References {
		require.NotEqual(t, "div", r.Name.String(), "a lowercase JSX tag must not be recorded as an identifier reference")
		require.NotEqual(t, "span", r.Name.String())
	}
}

func TestJSXComponentTagIsAReference(t *testing.T) {
	model, sink := build(t, `
		function Card() { return null; }
		function Page() {
			return <Card title="x" />;
		}
	`, DefaultOptions())
	require.False(t, sink.HasErrors())

	card, ok := findSymbol(model, "Card")
	require.True(t, ok)
	require.NotEmpty(t, card.References, "a capitalized JSX tag must resolve as a reference to the component it names")
}
