package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"

	"elf/interpreter-go/pkg/driver"
	"elf/interpreter-go/pkg/interpreter"
	"elf/interpreter-go/pkg/parser"
	"elf/interpreter-go/pkg/runtime"
)

const (
	promptMain = "elf> "
	promptCont = "...> "
)

func runRepl(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "elf repl does not take arguments (received %s)\n", strings.Join(args, " "))
		return 1
	}
	manifest, err := loadManifestFrom(".")
	if err != nil {
		if !errors.Is(err, driver.ErrManifestNotFound) {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return 1
		}
		manifest = nil
	}
	applyManifestLogLevel(manifest)
	histPath := manifest.HistoryPath()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				log.Warnf("repl: unable to save history to %s: %v", histPath, err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	session := newReplSession(os.Stdout)
	for {
		input, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(os.Stdout)
			break
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		if !session.eval(input) {
			break
		}
	}
	return 0
}

// readByParseProbe keeps prompting while the buffered text only fails to
// parse because it ended early.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		current := prompt
		if b.Len() > 0 {
			current = cont
		}
		line, err := ln.Prompt(current)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			log.Warnf("repl: %v", err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := parser.ParseSource(src); err != nil && parser.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}

// replSession evaluates inputs against one persistent global frame.
type replSession struct {
	interp *interpreter.Interpreter
	out    io.Writer
}

func newReplSession(out io.Writer) *replSession {
	return &replSession{interp: interpreter.NewWithOutput(out), out: out}
}

// eval runs one input and prints its result. It returns false when the
// session should end.
func (s *replSession) eval(input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, ":") {
		switch strings.ToLower(trimmed) {
		case ":quit", ":q":
			return false
		case ":env":
			s.printBindings()
			return true
		default:
			fmt.Fprintln(s.out, "unknown command. Type :env to list bindings or :quit to exit.")
			return true
		}
	}
	value, err := s.interp.EvaluateSource(input)
	fmt.Fprint(s.out, interpreter.RenderResult(value, err))
	return true
}

// printBindings lists the global bindings in name order.
func (s *replSession) printBindings() {
	env := s.interp.GlobalEnvironment()
	for _, name := range env.Keys() {
		value, _ := env.Lookup(name)
		fmt.Fprintf(s.out, "%s = %s\n", name, runtime.Inspect(value))
	}
}
