//go:build ignore
// +build ignore

// This tool prints the environment facts the probe depends on.
// Run with: go run tools/envcheck.go
package main

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/kolkov/memreorder/internal/reorder/cell"
	"github.com/kolkov/memreorder/internal/reorder/fence"
)

func main() {
	fmt.Printf("GOOS:       %s\n", runtime.GOOS)
	fmt.Printf("GOARCH:     %s\n", runtime.GOARCH)
	fmt.Printf("NumCPU:     %d\n", runtime.NumCPU())
	fmt.Printf("GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	fmt.Printf("cell size:  %d bytes (cache line %d)\n", unsafe.Sizeof(cell.Cell{}), cell.CacheLineSize)
	fmt.Printf("pair size:  %d bytes\n", unsafe.Sizeof(cell.Pair{}))
	fmt.Printf("cpu fence:  %s\n", fence.ImplName())

	fmt.Println()
	switch {
	case runtime.NumCPU() < 2:
		fmt.Println("verdict: single CPU, the workers cannot run in parallel")
	case runtime.GOMAXPROCS(0) < 2:
		fmt.Println("verdict: GOMAXPROCS < 2, raise it before running the probe")
	default:
		fmt.Println("verdict: ok, the probe can run two workers in parallel")
	}
}
