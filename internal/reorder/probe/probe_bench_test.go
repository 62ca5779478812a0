package probe

import (
	"io"
	"testing"

	"github.com/kolkov/memreorder/internal/reorder/fence"
)

// benchmarkRounds runs one probe of exactly b.N rounds, so the reported
// ns/op is the cost of a full round: reset, two releases, two transactions,
// two completions and classification.
func benchmarkRounds(b *testing.B, mode fence.Mode) {
	p, err := New(Config{Threshold: 1 << 30, MaxRounds: b.N, Fence: mode, SpinBound: 8, Log: io.Discard})
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	if _, err := p.Run(nil); err != nil {
		b.Fatal(err)
	}
}

func BenchmarkRounds(b *testing.B) {
	for _, mode := range []fence.Mode{fence.None, fence.Compiler, fence.CPU} {
		b.Run(mode.String(), func(b *testing.B) { benchmarkRounds(b, mode) })
	}
}
