// Package main implements the memreorder CLI tool.
//
// memreorder runs a store-load litmus loop on two pinned OS threads and
// counts the rounds in which both threads' loads miss the other thread's
// store, which is direct evidence of memory reordering. It exists to make
// store buffers visible:
//
//	memreorder run                  # probe with no fence until 10 reorders
//	memreorder run -fence cpu       # control run, reorders suppressed
//	memreorder gen -o repro         # emit a standalone reproducer module
//
// This is the CLI entry point; the probe itself lives in the reorder
// package and can be embedded directly.
package main

import (
	"fmt"
	"os"

	"github.com/kolkov/memreorder/reorder"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "run":
		runCommand(os.Args[2:])
	case "gen":
		genCommand(os.Args[2:])
	case "version", "--version", "-v":
		info := reorder.GetInfo()
		fmt.Printf("memreorder version %s (%s fence on %s)\n", info.Version, info.Fence, info.Arch)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`memreorder - store-load memory reordering probe

USAGE:
    memreorder <command> [arguments]

COMMANDS:
    run        Run the reordering probe
    gen        Generate a standalone reproducer module
    version    Show version information
    help       Show this help message

EXAMPLES:
    # Probe with no fence until 10 reorders are caught
    memreorder run

    # Stop after the first reorder
    memreorder run -threshold 1

    # Control run: a full fence must keep the count at zero
    memreorder run -fence cpu -rounds 10000000

    # Compile-time ordering only; the store buffer still reorders
    memreorder run -fence compiler

    # Write a dependency-free reproducer into ./repro
    memreorder gen -o repro -fence none -threshold 5

ABOUT:
    Each round, two workers pinned to separate OS threads run the same
    transaction against two shared cells: store 1 into their own cell,
    then load the other worker's cell. Under any sequentially consistent
    ordering at least one worker sees the other's store, so a round where
    both loads return 0 proves a store was deferred past the later load.
    One line is printed per caught reorder; a summary follows the run.

    The probe needs GOMAXPROCS >= 2 to mean anything, and must not be
    built with -race: the data race on the two cells is the experiment.

FOR MORE INFORMATION:
    Repository: https://github.com/kolkov/memreorder
    Documentation: https://pkg.go.dev/github.com/kolkov/memreorder/reorder

`)
}

// runCommand is implemented in run.go
// genCommand is implemented in gen.go
