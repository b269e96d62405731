package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"

	"elf/interpreter-go/pkg/driver"
	"elf/interpreter-go/pkg/interpreter"
	"elf/interpreter-go/pkg/lexer"
	"elf/interpreter-go/pkg/parser"
)

func runEntry(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	manifest, err := loadManifestFrom(".")
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrManifestNotFound):
			manifest = nil
		case len(args) == 1 && looksLikePathCandidate(args[0]):
			log.Warnf("unable to load manifest (%v); falling back to direct file execution", err)
			manifest = nil
		default:
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
	}
	applyManifestLogLevel(manifest)

	if len(args) == 0 {
		if manifest == nil {
			fmt.Fprintf(os.Stderr, "elf run requires a manifest target or source file (%s not found)\n", driver.ManifestFileName)
			return 1
		}
		target, err := manifest.DefaultTarget()
		if err != nil {
			fmt.Fprintf(os.Stderr, "manifest error: %v\n", err)
			return 1
		}
		return executeEntry(manifest.Resolve(target.Main))
	}

	candidate := args[0]
	if manifest != nil && !looksLikePathCandidate(candidate) {
		if target, ok := manifest.FindTarget(candidate); ok {
			return executeEntry(manifest.Resolve(target.Main))
		}
	}
	return executeEntry(candidate)
}

// executeEntry runs one program file, printing its result to stdout. Front-end
// failures go to stderr; every failure exits 1.
func executeEntry(path string) int {
	src, err := driver.LoadProgram(path)
	if err != nil {
		reportFrontEndError(path, err)
		return 1
	}
	if err := interpreter.Run(src.Program, os.Stdout); err != nil {
		log.LogVf("run %s failed: %v", path, err)
		return 1
	}
	return 0
}

func reportFrontEndError(path string, err error) {
	var parseErr *parser.ParseError
	var lexErr *lexer.Error
	switch {
	case errors.As(err, &parseErr):
		fmt.Fprintln(os.Stderr, parseErr.Describe(path))
	case errors.As(err, &lexErr):
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, lexErr)
	default:
		fmt.Fprintln(os.Stderr, err)
	}
}

func loadManifestFrom(dir string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(dir)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func looksLikePathCandidate(arg string) bool {
	return strings.HasSuffix(arg, driver.SourceExtension) || strings.ContainsRune(arg, filepath.Separator) || strings.ContainsRune(arg, '/')
}
