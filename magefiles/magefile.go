//go:build mage

// Package main contains Mage build targets for peoplesearch developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the local directories the CLI reads from or writes to.
var projectDirs = []string{
	".secrets",
	"queries",
	"output",
}

// sampleConfig is written to peoplesearch.yaml by Init when none exists.
const sampleConfig = `search:
  show_sources: matching
  strict: true
http:
  timeout: 30s
  max_retries: 3
  concurrency: 4
cache:
  backend: memory
  ttl: 1h
history:
  enabled: true
  path: output/peoplesearch-history.db
logging:
  env: dev
  level: warn
`

// Init creates the local directory layout and a starter peoplesearch.yaml.
// The API key goes in .secrets/pipl-api-key.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	if err := os.Chmod(".secrets", 0o700); err != nil {
		return fmt.Errorf("securing .secrets: %w", err)
	}
	if _, err := os.Stat("peoplesearch.yaml"); os.IsNotExist(err) {
		if err := os.WriteFile("peoplesearch.yaml", []byte(sampleConfig), 0o644); err != nil {
			return fmt.Errorf("writing peoplesearch.yaml: %w", err)
		}
		fmt.Println("   peoplesearch.yaml")
	}
	fmt.Println("Project initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "peoplesearch"
	cmdPkg  = "./cmd/peoplesearch"
)

// Build compiles the CLI binary into bin/, stamping the version from
// PEOPLESEARCH_VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	args := []string{"build", "-o", out}
	if v := os.Getenv("PEOPLESEARCH_VERSION"); v != "" {
		args = append(args, "-ldflags", "-X main.version="+v)
	}
	if err := sh.RunV("go", append(args, cmdPkg)...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests. The Redis cache test runs only when
// PEOPLESEARCH_TEST_REDIS_ADDR is set.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check regenerates mocks, then builds and tests.
func Check() {
	mg.SerialDeps(Generate, Build, Test)
}

// Stats prints project metrics: Go production/test LOC, mock LOC and
// documentation word count.
func Stats() error {
	var prod, tests, mocks, words int
	err := walkProject(func(path string, data []byte) {
		switch {
		case strings.HasSuffix(path, "_test.go"):
			tests += countLines(data)
		case strings.Contains(path, "/mocks/") && strings.HasSuffix(path, ".go"):
			mocks += countLines(data)
		case strings.HasSuffix(path, ".go"):
			prod += countLines(data)
		case strings.HasSuffix(path, ".md"), strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
			words += len(bytes.Fields(data))
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", tests)
	fmt.Printf("Lines of code (Go, mocks):      %d\n", mocks)
	fmt.Printf("Words (documentation):          %d\n", words)
	return nil
}

// walkProject calls fn for every regular file in the module, skipping
// directories the go tool ignores (leading "." or "_") and bin/.
func walkProject(fn func(path string, data []byte)) error {
	return filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != "." && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == binDir) {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		fn(filepath.ToSlash(path), data)
		return nil
	})
}

// countLines counts the non-blank lines in data.
func countLines(data []byte) int {
	n := 0
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
