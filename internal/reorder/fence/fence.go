// Package fence provides the ordering constraint a worker issues between its
// store and the load that follows it.
//
// Three tiers are selectable. None issues nothing, leaving the compiler and
// the processor free to overlap the store with the load. Compiler pins the
// program order of the emitted instructions but adds no hardware ordering,
// so the processor's store buffer can still defer the store past the load.
// CPU issues a full bidirectional fence: no load or store migrates across it
// in either direction, for the compiler or the processor.
package fence

import "fmt"

// Mode selects which constraint Apply issues.
type Mode int

const (
	// None issues no constraint.
	None Mode = iota

	// Compiler forbids compile-time migration across the point but emits
	// no ordering instruction.
	Compiler

	// CPU issues a full memory fence. MFENCE on amd64; elsewhere a
	// sequentially consistent read-modify-write.
	CPU
)

// modeNames maps each Mode to its flag-facing name, in Mode order.
var modeNames = [...]string{"none", "compiler", "cpu"}

// String returns the flag-facing name of the mode.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Known reports whether m is one of the three defined modes.
func Known(m Mode) bool {
	return m >= 0 && int(m) < len(modeNames)
}

// ParseMode maps a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return None, fmt.Errorf("unknown fence mode %q (valid: none, compiler, cpu)", s)
}

// ImplName names the CPU-tier implementation compiled into this binary.
func ImplName() string { return implName }

// Apply issues the constraint selected by m. The call sits between the
// worker's store and its load, so everything here stays branch-cheap and
// allocation-free.
func Apply(m Mode) {
	switch m {
	case Compiler:
		compilerBarrier()
	case CPU:
		cpuFence()
	}
}

// compilerBarrier is an opaque call site: with inlining disabled, memory
// operations do not migrate across it in the emitted code. No hardware
// ordering effect.
//
//go:noinline
func compilerBarrier() {}
