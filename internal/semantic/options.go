package semantic

// Options configures one semantic build. Mirrors jsparser.Options's
// plain-struct-of-knobs shape (teacher's config.Options pattern).
type Options struct {
	// BuildCFG controls whether per-function control-flow graphs (§3.6)
	// are constructed. Off by default for callers that only want
	// scope/symbol/reference tables (e.g. a quick rename-safety check).
	BuildCFG bool

	// SuggestSimilarNames enables edlib-based "did you mean" advice for
	// unresolved references (spec §6.2's diagnostic contract): when a
	// visible name is similar enough, an advice diagnostic whose message
	// carries the suggestion is recorded. It does not change resolution.
	SuggestSimilarNames bool
}

func DefaultOptions() Options {
	return Options{BuildCFG: true, SuggestSimilarNames: true}
}
