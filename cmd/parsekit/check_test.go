package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCheckReportsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ts")
	require.NoError(t, os.WriteFile(path, []byte("const x = ;"), 0o644))

	cfg = defaultConfig()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", filepath.Join(dir, "missing.toml"), "check", path})

	err := root.Execute()
	require.Error(t, err)
	require.Contains(t, out.String(), "error")
}

func TestRunCheckSucceedsOnValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.ts")
	require.NoError(t, os.WriteFile(path, []byte("function add(a: number, b: number) { return a + b; }"), 0o644))

	cfg = defaultConfig()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", filepath.Join(dir, "missing.toml"), "check", path})

	err := root.Execute()
	require.NoError(t, err)
	require.Contains(t, out.String(), "scope(s)")
}
