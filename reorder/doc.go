// Package reorder detects CPU store-load memory reordering on live hardware.
//
// The probe runs an unbounded sequence of rounds. In each round two workers,
// pinned to OS threads, concurrently execute the same two-step transaction
// against a pair of shared cells: store 1 into their own cell, then load the
// other worker's cell. If both loads return 0, neither store was visible to
// the other processor when its load executed: the store was deferred past
// the load by a store buffer or by the optimizer. That outcome is impossible
// under any sequentially consistent interleaving, so each occurrence is hard
// evidence of reordering.
//
// # Quick Start
//
// Run the probe from the command line:
//
//	$ memreorder run
//	1 reorders detected after 329 rounds
//	2 reorders detected after 694 rounds
//	...
//
// Or embed it:
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/kolkov/memreorder/reorder"
//	)
//
//	func main() {
//		res, err := reorder.Run(reorder.DefaultConfig())
//		if err != nil {
//			panic(err)
//		}
//		fmt.Println(reorder.Summarize(res))
//	}
//
// # API Overview
//
// The package provides:
//   - Running experiments: [Run], [RunWithStop], [Config], [DefaultConfig]
//   - Results: [Result], [Outcome], [StopReason]
//   - Statistics: [Summarize], [Summary]
//   - Fence selection: [FenceMode], [ParseFenceMode]
//   - Version information: [GetInfo], [Version]
//
// # Fence Modes
//
// The ordering constraint between each worker's store and load is
// configurable, so the same binary distinguishes compile-time from hardware
// reordering:
//
//	FenceNone      nothing; compiler and processor both free to reorder
//	FenceCompiler  opaque call; pins the emitted order, hardware still free
//	FenceCPU       full fence (MFENCE on amd64); reordering suppressed
//
// A run with FenceCPU is the experiment's control: its anomaly count must
// stay at zero.
//
// # Caveats
//
// The probe works by committing a deliberate data race on its two cells.
// Do not build it with the standard race detector: -race both flags the
// intended race and inserts synchronization that closes the window under
// test. For the same reason results are only meaningful with GOMAXPROCS of
// at least 2; the probe warns and continues otherwise.
//
// A nonzero anomaly count proves reordering happened. A zero count proves
// nothing by itself; it may only mean the window was never hit. Compare
// against a FenceNone run before reading anything into silence.
//
// # Examples
//
// See the package examples:
//   - [Example] - one-round boundary run
//   - [Example_roundLimit] - fixed round budget under a full fence
//   - [ExampleParseFenceMode] - flag parsing
package reorder
