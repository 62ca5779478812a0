// gen.go implements the 'memreorder gen' command.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"golang.org/x/mod/modfile"

	"github.com/kolkov/memreorder/reorder"
)

// reproducerGoVersion is the language version baked into generated go.mod
// files. Generated code uses nothing newer than channels and goroutines, so
// this only needs to trail the toolchain loosely.
const reproducerGoVersion = "1.24.0"

// genConfig carries the parsed 'gen' flags.
type genConfig struct {
	outDir    string
	fence     reorder.FenceMode
	threshold int
	maxRounds int
	spinBound uint64
	seed      uint64
	force     bool
}

// genCommand implements the 'memreorder gen' command.
//
// It writes a standalone reproducer module into a directory: a main.go with
// the chosen probe configuration baked in and a minimal go.mod. The
// reproducer has no dependencies, not even on this module, so it can be
// mailed to a bug report and run anywhere with a stock toolchain:
//
//	memreorder gen -o repro -threshold 5
//	cd repro && go run .
//
// Example:
//
//	memreorder gen -o repro
//	memreorder gen -o control -fence cpu -rounds 1000000
func genCommand(args []string) {
	config, err := parseGenArgs(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(1)
	}

	if err := writeReproducer(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %s\n", filepath.Join(config.outDir, "main.go"))
	fmt.Printf("wrote %s\n", filepath.Join(config.outDir, "go.mod"))
}

// parseGenArgs parses the 'gen' flags into a genConfig.
//
// Like parseRunArgs, all user-facing text goes to output and the returned
// error is for control flow only.
func parseGenArgs(args []string, output io.Writer) (*genConfig, error) {
	defaults := reorder.DefaultConfig()
	config := &genConfig{
		fence:     defaults.Fence,
		threshold: defaults.Threshold,
		spinBound: defaults.SpinBound,
	}

	fs := flag.NewFlagSet("memreorder gen", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: memreorder gen -o directory [flags]\n\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&config.outDir, "o", "", "write the reproducer module into `directory` (required)")
	fs.Var(fenceFlag{&config.fence}, "fence", "fence to bake in: none, compiler or cpu")
	fs.IntVar(&config.threshold, "threshold", config.threshold, "baked-in reorder target")
	fs.Var(roundsFlag{&config.maxRounds}, "rounds", "baked-in round limit")
	fs.Uint64Var(&config.spinBound, "spin", config.spinBound, "baked-in delay modulus")
	fs.Uint64Var(&config.seed, "seed", 0, "baked-in base seed")
	fs.BoolVar(&config.force, "force", false, "overwrite existing files")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(output, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	if config.outDir == "" {
		fmt.Fprintln(output, "missing required flag: -o")
		fs.Usage()
		return nil, fmt.Errorf("missing required flag: -o")
	}
	if config.threshold < 0 {
		fmt.Fprintln(output, "threshold must be >= 0")
		return nil, fmt.Errorf("threshold must be >= 0")
	}

	return config, nil
}

// writeReproducer renders the reproducer and writes main.go and go.mod
// under config.outDir, creating the directory if needed. Existing files are
// an error unless -force was given.
func writeReproducer(config *genConfig) error {
	mainPath := filepath.Join(config.outDir, "main.go")
	modPath := filepath.Join(config.outDir, "go.mod")

	if !config.force {
		for _, path := range []string{mainPath, modPath} {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use -force to overwrite)", path)
			}
		}
	}

	source, err := renderReproducer(config)
	if err != nil {
		return err
	}
	gomod, err := reproducerGoMod()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(config.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(mainPath, source, 0644); err != nil {
		return fmt.Errorf("failed to write main.go: %w", err)
	}
	if err := os.WriteFile(modPath, gomod, 0644); err != nil {
		return fmt.Errorf("failed to write go.mod: %w", err)
	}
	return nil
}

// renderReproducer executes the source template and gofmts the result, so
// template trimming artifacts never reach the output file.
func renderReproducer(config *genConfig) ([]byte, error) {
	data := reproducerData{
		Fence:       config.fence.String(),
		Threshold:   config.threshold,
		MaxRounds:   config.maxRounds,
		SpinBound:   config.spinBound,
		Seed:        config.seed,
		Fenced:      config.fence != reorder.FenceNone,
		NeedAtomic:  config.fence == reorder.FenceCPU,
		NeedBarrier: config.fence == reorder.FenceCompiler,
	}

	var buf bytes.Buffer
	if err := reproducerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render reproducer: %w", err)
	}
	source, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated source does not parse: %w", err)
	}
	return source, nil
}

// reproducerGoMod builds the reproducer's go.mod. There are no
// requirements; modfile keeps the syntax canonical.
func reproducerGoMod() ([]byte, error) {
	f := new(modfile.File)
	if err := f.AddModuleStmt("reorder-repro"); err != nil {
		return nil, err
	}
	if err := f.AddGoStmt(reproducerGoVersion); err != nil {
		return nil, err
	}
	return f.Format()
}

// reproducerData feeds reproducerTemplate.
type reproducerData struct {
	Fence       string
	Threshold   int
	MaxRounds   int
	SpinBound   uint64
	Seed        uint64
	Fenced      bool
	NeedAtomic  bool
	NeedBarrier bool
}

var reproducerTemplate = template.Must(template.New("reproducer").Parse(`// Code generated by memreorder gen. DO NOT EDIT.
//
// Store-load litmus reproducer, fence mode {{.Fence}}. Self-contained on
// purpose: build and run with a stock Go toolchain, no dependencies.
//
//	go run .
//
// Needs at least two CPUs. Do not build with -race; the data race on the
// two cells is the experiment.
package main

import (
	"fmt"
	"runtime"
	"sync"
{{- if .NeedAtomic}}
	"sync/atomic"
{{- end}}
)

var (
	threshold = {{.Threshold}}
	maxRounds = {{.MaxRounds}}
	spinBound = uint64({{.SpinBound}})
	baseSeed  = uint64({{.Seed}})
)

// cell keeps the two shared words on separate cache lines.
type cell struct {
	v int64
	_ [56]byte
}

var (
	x, y   cell
	r1, r2 int64
)
{{if .NeedAtomic}}
var fenceWord int32

// fence orders the store before the following load with a sequentially
// consistent read-modify-write.
func fence() { atomic.AddInt32(&fenceWord, 1) }
{{end}}
{{- if .NeedBarrier}}
// fence pins the compile-time order only; the processor still reorders.
//
//go:noinline
func fence() {}
{{end}}
type xorshift uint64

func (s *xorshift) next() uint64 {
	*s ^= *s << 13
	*s ^= *s >> 7
	*s ^= *s << 17
	return uint64(*s)
}

func (s *xorshift) delay() {
	if spinBound < 2 {
		return
	}
	for s.next()%spinBound != 0 {
	}
}

func main() {
	start1 := make(chan struct{}, 1)
	start2 := make(chan struct{}, 1)
	done := make(chan struct{}, 2)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		rng := xorshift(baseSeed + 1)
		for range start1 {
			rng.delay()
			x.v = 1
{{- if .Fenced}}
			fence()
{{- end}}
			r1 = y.v
			done <- struct{}{}
		}
	}()
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		rng := xorshift(baseSeed + 2)
		for range start2 {
			rng.delay()
			y.v = 1
{{- if .Fenced}}
			fence()
{{- end}}
			r2 = x.v
			done <- struct{}{}
		}
	}()

	reorders, round := 0, 0
	for {
		round++
		x.v, y.v = 0, 0
		start1 <- struct{}{}
		start2 <- struct{}{}
		<-done
		<-done
		if r1 == 0 && r2 == 0 {
			reorders++
			fmt.Printf("%d reorders detected after %d rounds\n", reorders, round)
		}
		if reorders >= threshold {
			break
		}
		if maxRounds > 0 && round == maxRounds {
			break
		}
	}
	fmt.Printf("done: %d reorders in %d rounds\n", reorders, round)

	close(start1)
	close(start2)
	wg.Wait()
}
`))
