// Package cell provides the shared memory the reordering probe operates on:
// the two contended cells and the two per-worker observation slots.
//
// Every value is padded to a full cache line. If the cells or slots shared a
// line, the workers would contend on it through the coherence protocol even
// for unrelated fields, and that contention would distort the timing of the
// store-load window under observation.
//
// All accesses are plain, non-atomic loads and stores. The unsynchronized
// access to the cells is the experiment itself; round pacing and visibility
// of the observation slots are handled by the probe's rendezvous channels,
// never here.
package cell

// CacheLineSize is the line size the padding assumes. 64 bytes holds for
// all amd64 and arm64 parts the probe targets.
const CacheLineSize = 64

// Cell is one shared integer slot. Within a round it is written by exactly
// one worker and read by the other; the orchestrator resets it between
// rounds.
type Cell struct {
	v int64
	_ [CacheLineSize - 8]byte
}

// Store writes v with a plain store.
func (c *Cell) Store(v int64) { c.v = v }

// Load returns the current value with a plain load.
func (c *Cell) Load() int64 { return c.v }

// Reset returns the cell to its pre-round state.
func (c *Cell) Reset() { c.v = 0 }

// Pair is the two shared cells of one probe. Worker 1 stores to X and loads
// Y; worker 2 stores to Y and loads X.
type Pair struct {
	X Cell
	Y Cell
}

// Reset zeroes both cells. The orchestrator calls this before releasing the
// workers into a round.
func (p *Pair) Reset() {
	p.X.Reset()
	p.Y.Reset()
}

// Slot records what one worker observed of its peer's cell. It is written
// by that worker alone and read by the orchestrator only after the
// completion rendezvous for the round.
type Slot struct {
	v int64
	_ [CacheLineSize - 8]byte
}

// Set records the observed value.
func (s *Slot) Set(v int64) { s.v = v }

// Get returns the recorded value.
func (s *Slot) Get() int64 { return s.v }
