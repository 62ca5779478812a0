// Package spin implements the deterministic busy-wait delay each worker runs
// before its transaction.
//
// The delay desynchronizes the two workers so that, across many rounds, their
// store-load windows overlap at varying offsets. It must spin rather than
// sleep: parking the goroutine would hand the interval to the OS scheduler,
// whose own synchronization serializes the workers and hides the very window
// under test.
package spin

// seed0 replaces a zero seed; xorshift is stuck at zero.
const seed0 = 0x9E3779B97F4A7C15

// XorShift64 is Marsaglia's 64-bit xorshift generator. It is cheap enough to
// step inside a spin loop and deterministic for a given seed, so a run can be
// replayed. Not safe for concurrent use; each worker owns its own instance.
type XorShift64 struct {
	state uint64
}

// New returns a generator seeded with seed. A zero seed is replaced with a
// fixed nonzero constant.
func New(seed uint64) *XorShift64 {
	if seed == 0 {
		seed = seed0
	}
	return &XorShift64{state: seed}
}

// Next advances the generator and returns the next value. Never returns 0.
func (r *XorShift64) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// Delay spins until Next returns a multiple of bound, issuing a processor
// spin hint each iteration. The trip count is geometrically distributed with
// mean bound-1. A bound of 0 or 1 returns immediately without advancing the
// generator.
//
// The generator state carries across calls, so consecutive delays follow
// different schedules and the loop has a side effect the compiler must keep.
func (r *XorShift64) Delay(bound uint64) {
	if bound < 2 {
		return
	}
	for r.Next()%bound != 0 {
		pause()
	}
}
