// Command parsekit is the thin demo binary that exercises the core
// pipeline (source classification, parsing, semantic analysis) end to
// end: parse one or more files and print their diagnostics and a
// one-line summary per file, the way evanw-esbuild's own cmd/esbuild
// is a consumer of its internal packages rather than a second
// implementation of them.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
