package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tinyc/interpreter-go/pkg/driver"
	"tinyc/interpreter-go/pkg/interpreter"
	"tinyc/interpreter-go/pkg/runtime"
)

const cliToolVersion = "tinyc 0.0.0-dev"

// dumpScopesEnv names the scope dump target when --dump-scopes is absent.
const dumpScopesEnv = "TINYC_DUMP_SCOPES"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage(stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:], stdout, stderr)
	case "check":
		return runCheck(args[1:], stderr)
	case "fixtures":
		return runFixtures(args[1:], stdout, stderr)
	default:
		return runEntry(args, stdout, stderr)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: tinyc [run] <program.yml> [--dump-scopes <path>]")
	fmt.Fprintln(w, "       tinyc check <program.yml>")
	fmt.Fprintln(w, "       tinyc fixtures <dir>")
	fmt.Fprintln(w, "       tinyc --version")
}

type runOptions struct {
	entry      string
	dumpScopes string
}

func parseRunArgs(args []string) (runOptions, error) {
	var opts runOptions
	for idx := 0; idx < len(args); idx++ {
		arg := args[idx]
		switch {
		case arg == "--dump-scopes":
			if idx+1 >= len(args) {
				return opts, fmt.Errorf("--dump-scopes requires a path")
			}
			idx++
			opts.dumpScopes = args[idx]
		case strings.HasPrefix(arg, "--dump-scopes="):
			opts.dumpScopes = strings.TrimPrefix(arg, "--dump-scopes=")
		case strings.HasPrefix(arg, "-") && arg != "-":
			return opts, fmt.Errorf("unknown flag %s", arg)
		case opts.entry == "":
			opts.entry = arg
		default:
			return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(args[idx:], " "))
		}
	}
	if opts.entry == "" {
		return opts, fmt.Errorf("tinyc run requires a program file")
	}
	if opts.dumpScopes == "" {
		opts.dumpScopes = strings.TrimSpace(os.Getenv(dumpScopesEnv))
	}
	return opts, nil
}

func runEntry(args []string, stdout, stderr io.Writer) int {
	opts, err := parseRunArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	program, err := driver.LoadProgram(opts.entry)
	if err != nil {
		reportLoadError(stderr, err)
		return 1
	}

	interp := interpreter.NewWithOptions(program.Global, interpreter.Options{Stdout: stdout})
	_, evalErr := interp.EvaluateProgram(program.Root)

	if opts.dumpScopes != "" {
		if err := writeScopeDump(program.Global, opts.dumpScopes, stderr); err != nil {
			fmt.Fprintf(stderr, "failed to write scope dump: %v\n", err)
			if evalErr == nil {
				return 1
			}
		}
	}
	if evalErr != nil {
		fmt.Fprintln(stderr, evalErr)
		return 1
	}
	return 0
}

func runCheck(args []string, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "tinyc check requires exactly one program file")
		return 1
	}
	program, err := driver.LoadProgram(args[0])
	if err != nil {
		reportLoadError(stderr, err)
		return 1
	}
	interp := interpreter.New(program.Global)
	if err := interp.Check(program.Root); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func reportLoadError(w io.Writer, err error) {
	fmt.Fprintln(w, loadDiagnostic(err))
}

// loadDiagnostic renders declaration failures as fatal diagnostics and
// everything else as a load failure.
func loadDiagnostic(err error) string {
	var srcErr *driver.SourceError
	if errors.As(err, &srcErr) {
		if rtErr, ok := interpreter.AsRuntimeError(interpreter.DeclarationFailure(srcErr.Err, srcErr.Line)); ok {
			return rtErr.Error()
		}
	}
	return fmt.Sprintf("failed to load program: %v", err)
}

// writeScopeDump writes the scope tree to path; "-" selects the diagnostic stream.
func writeScopeDump(global *runtime.Scope, path string, stderr io.Writer) error {
	if path == "-" {
		return global.Dump(stderr)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := global.Dump(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
