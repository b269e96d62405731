package main

import (
	"fmt"
	"os"
)

const cliToolVersion = "elf-cli 0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	level, remaining, err := parseLogLevelFlag(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := configureLogging(level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(remaining) == 0 {
		printUsage()
		return 1
	}

	switch remaining[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "tokens":
		return runTokens(remaining[1:])
	case "ast":
		return runAST(remaining[1:])
	case "run":
		return runEntry(remaining[1:])
	case "repl":
		return runRepl(remaining[1:])
	case "test":
		return runTest(remaining[1:])
	default:
		return runEntry(remaining)
	}
}
