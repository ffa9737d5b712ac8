package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineAndColumn(t *testing.T) {
	contents := "abc\ndef\nghi"

	line, col := lineAndColumn(contents, 0)
	require.Equal(t, 1, line)
	require.Equal(t, 1, col)

	line, col = lineAndColumn(contents, 5) // 'e' on the second line
	require.Equal(t, 2, line)
	require.Equal(t, 2, col)

	line, col = lineAndColumn(contents, 8) // 'g' on the third line
	require.Equal(t, 3, line)
	require.Equal(t, 1, col)
}

func TestNewReporterDisablesColorWhenConfigured(t *testing.T) {
	cfg = Config{Color: "never"}
	r := newReporter(discardWriter{})
	require.Equal(t, colors{}, r.c)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
