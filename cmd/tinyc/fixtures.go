package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"tinyc/interpreter-go/pkg/driver"
	"tinyc/interpreter-go/pkg/interpreter"
)

const manifestName = "manifest.yml"

// collectFixtures returns every directory under root holding a manifest.
func collectFixtures(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == manifestName {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}

// runFixture runs the program a manifest points at and compares stdout, the
// fatal diagnostic and the optional scope dump with the expectation.
func runFixture(dir string) error {
	manifest, err := driver.LoadManifest(filepath.Join(dir, manifestName))
	if err != nil {
		return err
	}
	expect := manifest.Expect

	program, err := driver.LoadProgram(manifest.EntryPath())
	if err != nil {
		diag := loadDiagnostic(err)
		if expect.Error == "" {
			return fmt.Errorf("unexpected load error: %s", diag)
		}
		if diag != expect.Error {
			return fmt.Errorf("expected error %q, got %q", expect.Error, diag)
		}
		if len(expect.Stdout) > 0 {
			return fmt.Errorf("expected stdout %v, but the program never ran", expect.Stdout)
		}
		return nil
	}

	var stdout strings.Builder
	interp := interpreter.NewWithOptions(program.Global, interpreter.Options{Stdout: &stdout})
	_, evalErr := interp.EvaluateProgram(program.Root)

	switch {
	case evalErr != nil && expect.Error == "":
		return fmt.Errorf("unexpected error: %v", evalErr)
	case evalErr == nil && expect.Error != "":
		return fmt.Errorf("expected error %q, run succeeded", expect.Error)
	case evalErr != nil && evalErr.Error() != expect.Error:
		return fmt.Errorf("expected error %q, got %q", expect.Error, evalErr.Error())
	}

	if got := outputLines(stdout.String()); !slices.Equal(got, expect.Stdout) {
		return fmt.Errorf("stdout mismatch: expected %q, got %q", expect.Stdout, got)
	}
	if expect.Dump != "" {
		var dump strings.Builder
		if err := program.Global.Dump(&dump); err != nil {
			return err
		}
		if dump.String() != expect.Dump {
			return fmt.Errorf("scope dump mismatch:\n got:\n%s\nwant:\n%s", dump.String(), expect.Dump)
		}
	}
	return nil
}

func outputLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func runFixtures(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "tinyc fixtures requires a fixture root directory")
		return 1
	}
	if _, err := os.Stat(args[0]); err != nil {
		fmt.Fprintf(stderr, "fixtures: %v\n", err)
		return 1
	}
	dirs, err := collectFixtures(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "fixtures: %v\n", err)
		return 1
	}
	failed := 0
	for _, dir := range dirs {
		if err := runFixture(dir); err != nil {
			failed++
			fmt.Fprintf(stderr, "FAIL %s: %v\n", dir, err)
			continue
		}
		fmt.Fprintf(stdout, "ok   %s\n", dir)
	}
	fmt.Fprintf(stdout, "%d fixtures, %d failed\n", len(dirs), failed)
	if failed > 0 {
		return 1
	}
	return 0
}
