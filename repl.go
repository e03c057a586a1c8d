package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jcorbin/stackforth/internal/grammar"
	"github.com/jcorbin/stackforth/internal/logio"
)

const (
	historyFile  = ".stackforth_history"
	promptMain   = "> "
	promptCont   = "... "
	replNameBase = "repl"
)

// repl reads entries from the terminal and evaluates each against the same
// VM. An error is logged and the session continues with whatever state the
// failed entry left behind.
func repl(ctx context.Context, vm *VM, log *logio.Logger, out io.Writer) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	for id := 1; ; id++ {
		src, ok := readEntry(ln)
		if !ok {
			io.WriteString(out, "\n")
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		name := replNameBase + "#" + strconv.Itoa(id)
		if err := vm.Eval(ctx, NamedReader(name, strings.NewReader(src))); err != nil {
			if ctx.Err() != nil {
				return err
			}
			log.Printf("ERROR", "%v", err)
		}
		if err := vm.WriteStack(out); err != nil {
			return err
		}
	}
}

// readEntry reads lines until they form a complete entry; an unterminated
// definition or comment continues onto the next line.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		} else if err != nil {
			// ctrl-c abandons the current entry
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if src := b.String(); entryComplete(src) {
			return src, true
		}
	}
}

// entryComplete returns false only if src ends inside a definition, a comment,
// or before a name that must follow; other syntax errors are left for Eval.
func entryComplete(src string) bool {
	_, err := grammar.Scan(strings.NewReader(src))
	return !grammar.Incomplete(err)
}
