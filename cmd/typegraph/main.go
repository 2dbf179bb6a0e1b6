package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/typegraph/typegraph/internal/decl"
	"github.com/typegraph/typegraph/internal/diagnostics"
	"github.com/typegraph/typegraph/internal/loader"
	"github.com/typegraph/typegraph/internal/prettyprinter"
	"github.com/typegraph/typegraph/internal/session"
)

const usage = `typegraph - structural type declaration checker

Usage:
  typegraph check <path>...            validate a declaration corpus
  typegraph export -o <db> <path>...   write resolved tables to sqlite

Paths may be corpus files or directories searched recursively.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "check":
		os.Exit(runCheck(os.Args[2:]))
	case "export":
		os.Exit(runExport(os.Args[2:]))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "print resolved ancestor chains")
	fs.Parse(args)

	result, ok := runBuild(fs.Args())
	if result == nil {
		return 1
	}

	if *verbose && result.Report != nil {
		for _, res := range result.Report.Results() {
			if res.Err != nil || res.Name.Kind == decl.AliasName {
				continue
			}
			fmt.Printf("%s: %s\n", res.Name, prettyprinter.Chain(res.InstanceAncestors))
		}
	}

	if !ok {
		return 1
	}
	fmt.Printf("ok: %d type(s) resolved (session %s)\n",
		len(result.Report.Results()), result.Report.SessionID)
	return 0
}

func runExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("o", "typegraph.db", "output sqlite database")
	fs.Parse(args)

	result, ok := runBuild(fs.Args())
	if result == nil || !ok {
		return 1
	}

	if err := exportReport(*output, result.Report); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		return 1
	}
	fmt.Printf("exported %d type(s) to %s (session %s)\n",
		len(result.Report.Results()), *output, result.Report.SessionID)
	return 0
}

// runBuild loads the corpus and runs the build pipeline. It returns the
// final pipeline context (nil when loading failed outright) and whether
// the corpus is clean.
func runBuild(paths []string) (*session.Context, bool) {
	if len(paths) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return nil, false
	}

	var decls []decl.Declaration
	for _, path := range paths {
		loaded, err := loadPath(path)
		if err != nil {
			reportError(err)
			return nil, false
		}
		decls = append(decls, loaded...)
	}

	pipe := session.NewPipeline(
		session.RegisterStage{},
		session.ValidateStage{},
		session.ResolveStage{},
	)
	result := pipe.Run(&session.Context{Ctx: context.Background(), Decls: decls})

	clean := true
	for _, err := range result.Errors {
		reportError(err)
		clean = false
	}
	if result.Report != nil {
		for _, failed := range result.Report.Failed() {
			reportError(failed.Err)
			clean = false
		}
	}
	return result, clean
}

func loadPath(path string) ([]decl.Declaration, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return loader.LoadDir(path)
	}
	return loader.LoadFile(path)
}

func reportError(err error) {
	msg := err.Error()
	if diag, ok := err.(diagnostics.Diagnostic); ok {
		msg = prettyprinter.Diagnostic(diag)
	}
	if useColor() {
		fmt.Fprintf(os.Stderr, "\x1b[31merror:\x1b[0m %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	}
}

func useColor() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}
