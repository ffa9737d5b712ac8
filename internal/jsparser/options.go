// Package jsparser implements C6's syntactic half: a recursive-descent,
// precedence-climbing parser grounded on evanw-esbuild's internal/js_parser,
// generalized to the spec's grammar (JS + JSX + TypeScript type syntax) and
// to the closed-sum AST in internal/jsast.
package jsparser

// Options configures one parse. Mirrors the knobs esbuild's config.Options
// exposes for the parser specifically (as opposed to the bundler-wide
// options esbuild also carries, which have no home in this core).
type Options struct {
	// AllowReturnOutsideFunction relaxes the top-level "return" check, used
	// by some embedders (e.g. REPLs). Off by default.
	AllowReturnOutsideFunction bool

	// RecordComments controls whether trivia is collected at all; parsers
	// embedded in latency-sensitive pipelines can skip it entirely.
	RecordComments bool
}

// DefaultOptions returns the options used when embedders don't care.
func DefaultOptions() Options {
	return Options{RecordComments: true}
}
