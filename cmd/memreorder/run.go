// run.go implements the 'memreorder run' command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/kolkov/memreorder/reorder"
)

// runConfig carries the parsed 'run' flags.
type runConfig struct {
	reorder.Config
	quiet bool
}

// runCommand implements the 'memreorder run' command.
//
// This command runs the probe in-process with the configuration given on
// the command line. Report lines stream to stdout as reorders are caught;
// the summary block goes to stderr when the run ends.
//
// Flow:
//  1. Parse flags into a probe configuration
//  2. Trap the first interrupt and stop at the next round boundary
//  3. Run the probe to completion
//  4. Print the summary (unless -quiet)
//  5. Exit 0, or 130 if the run was interrupted
//
// Example:
//
//	memreorder run
//	memreorder run -fence cpu -rounds 1000000
//	memreorder run -threshold 1 -seed 7
func runCommand(args []string) {
	config, err := parseRunArgs(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(1)
	}

	// Trap the first interrupt and turn it into a clean stop at the next
	// round boundary. signal.Stop restores the default disposition, so a
	// second interrupt kills the process the usual way.
	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		signal.Stop(sig)
		fmt.Fprintln(os.Stderr, "interrupt: finishing the current round")
		close(stop)
	}()

	result, err := reorder.RunWithStop(config.Config, stop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !config.quiet {
		fmt.Fprintln(os.Stderr)
		reorder.Summarize(result).Format(os.Stderr)
	}

	if result.Reason == reorder.Interrupted {
		os.Exit(130)
	}
}

// parseRunArgs parses the 'run' flags into a runConfig.
//
// Flag errors and usage text go to output, so callers decide where that
// noise lands. The returned error is for control flow only; everything
// worth telling the user has already been printed.
func parseRunArgs(args []string, output io.Writer) (*runConfig, error) {
	config := &runConfig{Config: reorder.DefaultConfig()}

	fs := flag.NewFlagSet("memreorder run", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: memreorder run [flags]\n\n")
		fs.PrintDefaults()
	}
	fs.Var(fenceFlag{&config.Fence}, "fence", "fence between store and load: none, compiler or cpu")
	fs.IntVar(&config.Threshold, "threshold", config.Threshold, "stop after `N` reorders")
	fs.Var(roundsFlag{&config.MaxRounds}, "rounds", "stop after `N` rounds even without reorders")
	fs.Uint64Var(&config.SpinBound, "spin", config.SpinBound, "delay modulus `M`; workers spin until rand%M == 0")
	fs.Uint64Var(&config.Seed, "seed", 0, "base `seed` for the workers' delay generators")
	fs.IntVar(&config.StatusEvery, "status", 0, "print a progress line every `N` rounds")
	fs.BoolVar(&config.quiet, "quiet", false, "suppress the summary block")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(output, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	return config, nil
}

// fenceFlag adapts reorder.FenceMode to the flag.Value interface.
type fenceFlag struct {
	x *reorder.FenceMode
}

func (f fenceFlag) String() string {
	if f.x == nil {
		return ""
	}
	return f.x.String()
}

func (f fenceFlag) Set(s string) error {
	mode, err := reorder.ParseFenceMode(s)
	if err != nil {
		return err
	}
	*f.x = mode
	return nil
}

// roundsFlag is a round limit that also reads "inf" as no limit.
type roundsFlag struct {
	x *int
}

func (f roundsFlag) String() string {
	if f.x == nil {
		// The flag package probes the zero value of roundsFlag
		// for the default string.
		return "<nil>"
	}
	if *f.x <= 0 {
		return "infinity"
	}
	return strconv.Itoa(*f.x)
}

func (f roundsFlag) Set(s string) error {
	switch s {
	case "inf", "infinity", "none":
		*f.x = 0
		return nil
	}

	limit, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if limit <= 0 {
		return fmt.Errorf("round limit must be > 0")
	}
	*f.x = limit
	return nil
}
