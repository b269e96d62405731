package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  elf [--log-level=LEVEL] <file.elf>")
	fmt.Fprintln(os.Stderr, "  elf [--log-level=LEVEL] run [target|file.elf]")
	fmt.Fprintln(os.Stderr, "  elf [--log-level=LEVEL] tokens <file.elf>")
	fmt.Fprintln(os.Stderr, "  elf [--log-level=LEVEL] ast <file.elf>")
	fmt.Fprintln(os.Stderr, "  elf [--log-level=LEVEL] repl")
	fmt.Fprintln(os.Stderr, "  elf [--log-level=LEVEL] test [--jobs N] [--update] [paths]")
	fmt.Fprintln(os.Stderr, "  elf version")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "LEVEL is one of debug, verbose, info, warning, error; "+logLevelEnv+" sets it too.")
}
