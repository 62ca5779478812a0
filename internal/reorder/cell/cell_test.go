package cell

import (
	"testing"
	"unsafe"
)

func TestPaddingFillsCacheLine(t *testing.T) {
	if got := unsafe.Sizeof(Cell{}); got != CacheLineSize {
		t.Errorf("Cell size = %d bytes, want %d", got, CacheLineSize)
	}
	if got := unsafe.Sizeof(Slot{}); got != CacheLineSize {
		t.Errorf("Slot size = %d bytes, want %d", got, CacheLineSize)
	}
	if got := unsafe.Sizeof(Pair{}); got != 2*CacheLineSize {
		t.Errorf("Pair size = %d bytes, want %d", got, 2*CacheLineSize)
	}
}

func TestCellStoreLoad(t *testing.T) {
	var c Cell
	if got := c.Load(); got != 0 {
		t.Errorf("zero-value Load() = %d, want 0", got)
	}
	c.Store(1)
	if got := c.Load(); got != 1 {
		t.Errorf("Load() after Store(1) = %d, want 1", got)
	}
	c.Reset()
	if got := c.Load(); got != 0 {
		t.Errorf("Load() after Reset() = %d, want 0", got)
	}
}

func TestPairReset(t *testing.T) {
	var p Pair
	p.X.Store(1)
	p.Y.Store(1)
	p.Reset()
	if got := p.X.Load(); got != 0 {
		t.Errorf("X after Reset() = %d, want 0", got)
	}
	if got := p.Y.Load(); got != 0 {
		t.Errorf("Y after Reset() = %d, want 0", got)
	}
}

func TestSlotSetGet(t *testing.T) {
	var s Slot
	for _, v := range []int64{0, 1, 0, 1} {
		s.Set(v)
		if got := s.Get(); got != v {
			t.Errorf("Get() after Set(%d) = %d", v, got)
		}
	}
}
