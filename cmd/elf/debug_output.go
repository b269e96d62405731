package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"elf/interpreter-go/pkg/driver"
)

func runTokens(args []string) int {
	return runDump("tokens", args, driver.DumpTokens)
}

func runAST(args []string) int {
	return runDump("ast", args, driver.DumpAST)
}

func runDump(command string, args []string, dump func(io.Writer, *driver.Source) error) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "elf %s expects exactly one source file\n", command)
		return 1
	}
	src, err := driver.ReadSource(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	out := bufio.NewWriter(os.Stdout)
	if err := dump(out, src); err != nil {
		reportFrontEndError(args[0], err)
		return 1
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "elf %s: %v\n", command, err)
		return 1
	}
	return 0
}
