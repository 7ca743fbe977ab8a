//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary      = "bin/mdlive"
	mainPackage = "./cmd/mdlive"
	coverFile   = "coverage.out"
	profileFile = "decorate.cpu.out"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"fz":   Test.Fuzz,
	"bd":   Bench.Decorate,
	"demo": Demo,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/mdlive with version info when sources changed.
func Build() error {
	stale, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building mdlive...")
	return goCmd("build", "-ldflags", ldflags(), "-o", binary, mainPackage)
}

// Install runs go install with version info.
func Install() error {
	return goCmd("install", "-ldflags", ldflags(), mainPackage)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build output, coverage and profiles.
func Clean() error {
	for _, path := range []string{"bin", coverFile, "coverage.html", profileFile} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Demo builds mdlive and renders a sample document with the caret on the
// bold word, then lists its decorations.
func Demo() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "mdlive-demo")
	if err != nil {
		return fmt.Errorf("create demo dir: %w", err)
	}
	defer os.RemoveAll(dir)

	doc := filepath.Join(dir, "demo.md")
	sample := "# Shopping\n\nGet **fresh** bread and `flour`.\n\n- [ ] milk\n- [x] eggs\n  1. brown\n"
	if err := os.WriteFile(doc, []byte(sample), 0o600); err != nil {
		return fmt.Errorf("write demo document: %w", err)
	}

	if err := sh.RunV(binary, "render", doc, "--cursor", "3:8", "-n"); err != nil {
		return err
	}
	return sh.RunV(binary, "decorations", doc)
}

// Default runs the tests with the race detector and coverage.
func (Test) Default() error {
	return gotestsum("pkgname-and-test-fails", "-race", "-coverprofile="+coverFile, "-covermode=atomic", "./...")
}

// Verbose runs the tests with standard-verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race", "./...")
}

// Fuzz runs each fuzz target for FUZZTIME (default 20s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "20s")
	targets := []struct{ pkg, name string }{
		{"./pkg/parser/goldmark/", "FuzzParse"},
		{"./pkg/parser/goldmark/", "FuzzParseGFM"},
		{"./pkg/parser/goldmark/", "FuzzParseDeterministic"},
		{"./pkg/edit/", "FuzzApply"},
	}
	for _, t := range targets {
		fmt.Printf("Fuzzing %s %s for %s...\n", t.pkg, t.name, fuzzTime)
		if err := goCmd("test", "-run", "^$", "-fuzz", "^"+t.name+"$", "-fuzztime", fuzzTime, t.pkg); err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
	}
	return nil
}

// Cover opens the HTML coverage report.
func (Test) Cover() error {
	st.Deps(Test.Default)
	if err := goCmd("tool", "cover", "-html="+coverFile, "-o", "coverage.html"); err != nil {
		return err
	}
	return sh.RunV("open", "coverage.html")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when any file needs formatting.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s", out)
	}
	return nil
}

// Gate runs what CI runs: format check, vet, lint, build, tests, a tidy
// check and cross builds.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, CI.Vet, CI.Lint, Build, Test.Default, CI.ModTidy, CI.Cross)
}

// Vet runs go vet.
func (CI) Vet() error {
	return goCmd("vet", "./...")
}

// Lint runs golangci-lint without fixing anything.
func (CI) Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// ModTidy fails when go mod tidy would change go.mod.
func (CI) ModTidy() error {
	before, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod: %w", err)
	}
	if err := goCmd("mod", "tidy"); err != nil {
		return err
	}
	after, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod: %w", err)
	}
	if string(before) != string(after) {
		return errors.New("go.mod changed after go mod tidy")
	}
	return nil
}

// Cross builds mdlive for every release platform.
func (CI) Cross() error {
	for _, platform := range []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "freebsd/amd64",
	} {
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPackage); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs every benchmark.
func (Bench) Default() error {
	return goCmd("test", "-run", "^$", "-bench", ".", "-benchmem", "./...")
}

// Decorate benchmarks decoration builds and writes a CPU profile.
func (Bench) Decorate() error {
	if err := goCmd("test", "-run", "^$", "-bench", "BuildDecorations", "-benchmem",
		"-cpuprofile", profileFile, "./pkg/decorate/"); err != nil {
		return err
	}
	fmt.Println("Profile written to", profileFile)
	return nil
}

func goCmd(args ...string) error {
	return sh.RunV("go", args...)
}

// gotestsum runs the go.mod gotestsum tool with format and go test args.
func gotestsum(format string, args ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	cmdArgs := []string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}
	return goCmd(append(cmdArgs, args...)...)
}

// git returns the trimmed output of a git command, or "" on failure.
func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339),
	)
}
