// Package source implements C4: source coordinates (Span) and source-type
// classification (SourceType), the inputs every other core package shares.
package source

import "fmt"

// Span is a half-open byte range over UTF-8 source text. Every AST node
// carries one. 32 bits is enough for any single source file the parser can
// accept (spec §4.4.4 rejects files of 2^32 bytes or more).
type Span struct {
	Start uint32
	End   uint32
}

func (s Span) Len() uint32 { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Contains reports whether child lies entirely within s, the span
// containment invariant from spec §3.3 and §8.1.
func (s Span) Contains(child Span) bool {
	return s.Start <= child.Start && child.End <= s.End
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}
