// Package arena implements a bump allocator whose allocations all share one
// lifetime. Nothing allocated from an Arena can be individually freed; the
// whole region is reclaimed at once by Reset.
package arena

import "github.com/cespare/xxhash/v2"

// segmentSize is the number of slots in each growth segment of a typed
// slab. Chosen so that a freshly-reset arena can satisfy a modest source
// file (a few thousand AST nodes) from its first segment alone.
const segmentSize = 1024

// Arena is a bump-allocated region. It is not safe for concurrent use by
// multiple goroutines; each worker in a pipeline owns one Arena for the
// duration of processing one file (see Pool).
type Arena struct {
	slabs   []slab
	strings *interner
	live    int // outstanding slabs since the last Reset, for diagnostics only
}

type slab struct {
	reset func()
}

// New returns an empty, ready-to-use Arena.
func New() *Arena {
	a := &Arena{}
	a.strings = newInterner()
	return a
}

// Reset bulk-frees every allocation made from the arena. Any reference
// handed out before Reset must not be dereferenced afterwards; the caller's
// use of lifetimes (in spirit: not re-using a slice/pointer after Reset) is
// what keeps this safe in a garbage-collected host language.
func (a *Arena) Reset() {
	for _, s := range a.slabs {
		s.reset()
	}
	a.slabs = a.slabs[:0]
	a.strings.reset()
	a.live = 0
}

// Slab is a typed bump-allocated array. It grows by appending fresh
// segments rather than reallocating and copying, so existing pointers
// returned by Alloc remain valid until the arena is reset.
type Slab[T any] struct {
	arena    *Arena
	segments [][]T
	len      int
}

// NewSlab registers a new typed slab with the arena so that Arena.Reset
// can clear it without needing reflection.
func NewSlab[T any](a *Arena) *Slab[T] {
	s := &Slab[T]{arena: a}
	a.slabs = append(a.slabs, slab{reset: s.clear})
	a.live++
	return s
}

func (s *Slab[T]) clear() {
	s.segments = s.segments[:0]
	s.len = 0
}

// Alloc returns a pointer to a zero-valued T owned by the arena.
func (s *Slab[T]) Alloc() *T {
	seg, idx := s.reserve(1)
	return &seg[idx]
}

// AllocValue copies value into the arena and returns a pointer to the copy.
func AllocValue[T any](s *Slab[T], value T) *T {
	p := s.Alloc()
	*p = value
	return p
}

// AllocSlice allocates a contiguous run of n elements, all zero-valued.
func (s *Slab[T]) AllocSlice(n int) []T {
	if n == 0 {
		return nil
	}
	seg, idx := s.reserve(n)
	return seg[idx : idx+n]
}

// reserve ensures the tail segment has room for n more elements and
// returns that segment along with the offset of the first reserved slot.
// A request for n > segmentSize gets its own exactly-sized segment so a
// single AllocSlice call is always one contiguous allocation as the
// contract in spec §4.1 ("alloc_slice(iter) -> single contiguous
// allocation") requires.
func (s *Slab[T]) reserve(n int) ([]T, int) {
	if len(s.segments) == 0 {
		s.segments = append(s.segments, make([]T, 0, maxInt(segmentSize, n)))
	}
	tail := s.segments[len(s.segments)-1]
	if cap(tail)-len(tail) < n {
		size := segmentSize
		if n > size {
			size = n
		}
		tail = make([]T, 0, size)
		s.segments = append(s.segments, tail)
	}
	idx := len(tail)
	tail = tail[:idx+n]
	s.segments[len(s.segments)-1] = tail
	s.len += n
	return tail, idx
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Box is an owning pointer into the arena. It exists as a named type (not a
// bare *T) so that call sites read the same way the spec's `Box<'a, T>`
// does, and so a future zero-copy layout can add bookkeeping without
// changing every call site.
type Box[T any] struct {
	ptr *T
}

// NewBox allocates value in the arena and returns an owning Box.
func NewBox[T any](s *Slab[T], value T) Box[T] {
	return Box[T]{ptr: AllocValue(s, value)}
}

func (b Box[T]) Get() *T   { return b.ptr }
func (b Box[T]) IsNil() bool { return b.ptr == nil }

// Vec is a growable, append-only array. Unlike Slab, which hands out
// fixed-capacity segments from the arena, Vec is backed by an ordinary Go
// slice: its storage is not allocated in an arena, it is not tied to any
// Arena, and Reset does not reclaim it; the garbage collector does.
type Vec[T any] struct {
	data []T
}

// NewVec creates an empty Vec with the given starting capacity.
func NewVec[T any](capacity int) Vec[T] {
	if capacity < 0 {
		capacity = 0
	}
	return Vec[T]{data: make([]T, 0, capacity)}
}

func (v *Vec[T]) Push(value T) { v.data = append(v.data, value) }
func (v *Vec[T]) Extend(values []T) { v.data = append(v.data, values...) }
func (v *Vec[T]) Len() int     { return len(v.data) }
func (v *Vec[T]) Get(i int) T  { return v.data[i] }
func (v *Vec[T]) Slice() []T   { return v.data }

func (v *Vec[T]) IntoIter() func(yield func(int, T) bool) {
	return func(yield func(int, T) bool) {
		for i, x := range v.data {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Atom is an interned string reference. Equality is by content; two Atoms
// produced by the same Arena's Intern for equal strings compare equal by
// value without touching the underlying bytes.
type Atom struct {
	hash uint64
	text string
}

func (a Atom) String() string   { return a.text }
func (a Atom) Equal(b Atom) bool { return a.hash == b.hash && a.text == b.text }
func (a Atom) IsEmpty() bool    { return a.text == "" }

type interner struct {
	table map[uint64][]string
}

func newInterner() *interner {
	return &interner{table: make(map[uint64][]string)}
}

func (in *interner) reset() {
	in.table = make(map[uint64][]string)
}

// Intern deduplicates s by content, hashed with xxhash (grounded on the
// standardbeagle-lci pack entry's use of cespare/xxhash for exactly this
// kind of content-addressed table). The returned Atom's backing string may
// be shared across many call sites; callers must not mutate it (Go strings
// are immutable, so this is enforced by the type system).
func (a *Arena) Intern(s string) Atom {
	h := xxhash.Sum64String(s)
	bucket := a.strings.table[h]
	for _, existing := range bucket {
		if existing == s {
			return Atom{hash: h, text: existing}
		}
	}
	a.strings.table[h] = append(bucket, s)
	return Atom{hash: h, text: s}
}
