// gen_test.go tests the 'memreorder gen' command.
package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/mod/modfile"

	"github.com/kolkov/memreorder/reorder"
)

// TestParseGenArgs_Defaults tests that only -o is required.
func TestParseGenArgs_Defaults(t *testing.T) {
	config, err := parseGenArgs([]string{"-o", "out"}, io.Discard)
	if err != nil {
		t.Fatalf("parseGenArgs() error: %v", err)
	}

	if config.outDir != "out" {
		t.Errorf("outDir = %q, want %q", config.outDir, "out")
	}
	if config.fence != reorder.FenceNone {
		t.Errorf("fence = %v, want %v", config.fence, reorder.FenceNone)
	}
	if config.threshold != 10 {
		t.Errorf("threshold = %d, want 10", config.threshold)
	}
	if config.maxRounds != 0 {
		t.Errorf("maxRounds = %d, want 0", config.maxRounds)
	}
	if config.spinBound != 8 {
		t.Errorf("spinBound = %d, want 8", config.spinBound)
	}
	if config.force {
		t.Errorf("force = true, want false")
	}
}

// TestParseGenArgs_MissingOutput tests that -o is in fact required.
func TestParseGenArgs_MissingOutput(t *testing.T) {
	if _, err := parseGenArgs(nil, io.Discard); err == nil {
		t.Errorf("parseGenArgs() succeeded without -o, want error")
	}
}

// TestParseGenArgs_NegativeThreshold tests the threshold guard.
func TestParseGenArgs_NegativeThreshold(t *testing.T) {
	args := []string{"-o", "out", "-threshold", "-1"}
	if _, err := parseGenArgs(args, io.Discard); err == nil {
		t.Errorf("parseGenArgs(%v) succeeded, want error", args)
	}
}

// TestWriteReproducer tests the generated module end to end: the source
// must parse, declare main, carry the baked-in configuration, and ship
// with a canonical go.mod.
func TestWriteReproducer(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "test-gen-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	config := &genConfig{
		outDir:    filepath.Join(tempDir, "repro"),
		fence:     reorder.FenceNone,
		threshold: 5,
		maxRounds: 1000,
		spinBound: 8,
	}
	if err := writeReproducer(config); err != nil {
		t.Fatalf("writeReproducer() error: %v", err)
	}

	// The source must parse and declare func main.
	mainPath := filepath.Join(config.outDir, "main.go")
	source, err := os.ReadFile(mainPath)
	if err != nil {
		t.Fatalf("Failed to read generated main.go: %v", err)
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, mainPath, source, 0)
	if err != nil {
		t.Fatalf("Generated main.go does not parse: %v", err)
	}
	hasMain := false
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Name.Name == "main" && fn.Recv == nil {
			hasMain = true
		}
	}
	if !hasMain {
		t.Errorf("Generated main.go has no main function")
	}

	// The configuration must be baked in.
	text := string(source)
	if !strings.HasPrefix(text, "// Code generated by memreorder gen. DO NOT EDIT.") {
		t.Errorf("Generated main.go is missing the generated-code marker")
	}
	for _, want := range []string{"threshold = 5", "maxRounds = 1000"} {
		if !strings.Contains(text, want) {
			t.Errorf("Generated main.go is missing %q", want)
		}
	}

	// go.mod must carry the expected module path and language version.
	modPath := filepath.Join(config.outDir, "go.mod")
	modData, err := os.ReadFile(modPath)
	if err != nil {
		t.Fatalf("Failed to read generated go.mod: %v", err)
	}
	modFile, err := modfile.Parse(modPath, modData, nil)
	if err != nil {
		t.Fatalf("Generated go.mod does not parse: %v", err)
	}
	if modFile.Module == nil || modFile.Module.Mod.Path != "reorder-repro" {
		t.Errorf("go.mod module path = %v, want reorder-repro", modFile.Module)
	}
	if modFile.Go == nil || modFile.Go.Version != reproducerGoVersion {
		t.Errorf("go.mod go version = %v, want %s", modFile.Go, reproducerGoVersion)
	}
	if len(modFile.Require) != 0 {
		t.Errorf("go.mod has %d requirements, want none", len(modFile.Require))
	}
}

// TestRenderReproducer_FenceContent tests the per-mode fence rendering.
func TestRenderReproducer_FenceContent(t *testing.T) {
	tests := []struct {
		fence   reorder.FenceMode
		want    []string
		exclude []string
	}{
		{
			fence:   reorder.FenceNone,
			exclude: []string{"fence()", "sync/atomic", "go:noinline"},
		},
		{
			fence:   reorder.FenceCompiler,
			want:    []string{"fence()", "//go:noinline"},
			exclude: []string{"sync/atomic"},
		},
		{
			fence:   reorder.FenceCPU,
			want:    []string{"fence()", "sync/atomic", "atomic.AddInt32"},
			exclude: []string{"go:noinline"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.fence.String(), func(t *testing.T) {
			config := &genConfig{
				outDir:    "unused",
				fence:     tt.fence,
				threshold: 10,
				spinBound: 8,
			}
			source, err := renderReproducer(config)
			if err != nil {
				t.Fatalf("renderReproducer() error: %v", err)
			}
			text := string(source)
			for _, want := range tt.want {
				if !strings.Contains(text, want) {
					t.Errorf("%s reproducer is missing %q", tt.fence, want)
				}
			}
			for _, exclude := range tt.exclude {
				if strings.Contains(text, exclude) {
					t.Errorf("%s reproducer should not contain %q", tt.fence, exclude)
				}
			}
		})
	}
}

// TestRenderReproducer_DegenerateSpin tests that a zero delay modulus still
// renders source that parses. The modulus lands in a division, so it must
// be rendered as a variable rather than folded into a constant expression.
func TestRenderReproducer_DegenerateSpin(t *testing.T) {
	config := &genConfig{
		outDir:    "unused",
		fence:     reorder.FenceNone,
		threshold: 1,
		spinBound: 0,
	}
	source, err := renderReproducer(config)
	if err != nil {
		t.Fatalf("renderReproducer() error: %v", err)
	}
	if !strings.Contains(string(source), "spinBound = uint64(0)") {
		t.Errorf("reproducer is missing the zero delay modulus")
	}
}

// TestWriteReproducer_RefusesOverwrite tests the overwrite guard and its
// -force escape hatch.
func TestWriteReproducer_RefusesOverwrite(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "test-gen-overwrite-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	config := &genConfig{
		outDir:    tempDir,
		fence:     reorder.FenceCPU,
		threshold: 1,
		spinBound: 8,
	}
	if err := writeReproducer(config); err != nil {
		t.Fatalf("first writeReproducer() error: %v", err)
	}

	err = writeReproducer(config)
	if err == nil {
		t.Fatalf("second writeReproducer() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error = %v, want mention of existing files", err)
	}

	config.force = true
	if err := writeReproducer(config); err != nil {
		t.Errorf("writeReproducer() with force error: %v", err)
	}
}
