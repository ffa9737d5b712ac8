package arena

import "sync"

// Pool hands out Arena guards to worker threads. It is the only piece of
// cross-thread mutable state in the whole core (spec §5): everything else
// an Arena produces is owned by the single file being processed and must
// never be shared across arenas.
//
// The pooling/reset discipline is grounded on the generic sync.Pool-backed
// entry pool in the pack's capacitor example
// (_examples/other_examples/...capacitor-pkg-cache-memory-pool.go.go).
// This Pool is a mutex-guarded free list rather than a sync.Pool, and it
// resets an arena only on Release: Get hands out either a fresh Arena or
// one that Release has already reset.
type Pool struct {
	mu    sync.Mutex
	free  []*Arena
	inUse map[*Arena]bool
}

// NewPool creates an empty pool. Arenas are created lazily: Get allocates a
// fresh Arena whenever the free list is empty, per spec §4.2.
func NewPool() *Pool {
	return &Pool{inUse: make(map[*Arena]bool)}
}

// Guard derefs to the acquired Arena and must be released exactly once via
// Release (or, more conveniently, by deferring it immediately after Get).
type Guard struct {
	pool  *Pool
	arena *Arena
}

func (g *Guard) Arena() *Arena { return g.arena }

// Release resets the arena and returns it to the pool. It is safe to call
// from a deferred statement even if the code that used the arena panicked,
// which is the whole point of acquiring through a guard instead of a bare
// pointer: the arena can never leak out of circulation.
func (g *Guard) Release() {
	if g == nil || g.arena == nil {
		return
	}
	g.arena.Reset()
	g.pool.mu.Lock()
	delete(g.pool.inUse, g.arena)
	g.pool.free = append(g.pool.free, g.arena)
	g.pool.mu.Unlock()
	g.arena = nil
}

// Get acquires an arena guard. It never returns an arena already held by
// another guard; when the free list is empty a new Arena is created under
// the lock.
func (p *Pool) Get() *Guard {
	p.mu.Lock()
	var a *Arena
	if n := len(p.free); n > 0 {
		a = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		a = New()
	}
	p.inUse[a] = true
	p.mu.Unlock()
	return &Guard{pool: p, arena: a}
}

// Len reports the number of arenas currently parked in the free list, for
// tests and metrics only.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
