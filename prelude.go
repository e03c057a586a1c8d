package main

import (
	"bytes"
	"io"
)

// prelude defines common stack words out of the builtin operators; main
// queues it ahead of the user program when run with -prelude.
var prelude = preludeSource{}

type preludeSource struct{}

func (preludeSource) Name() string { return "prelude.fs" }

func (preludeSource) WriteTo(w io.Writer) (n int64, err error) {
	var buf bytes.Buffer
	line := func(parts ...string) {
		if err != nil {
			return
		}
		for _, s := range parts {
			buf.WriteString(s)
		}
		buf.WriteByte('\n')
		var m int64
		m, err = buf.WriteTo(w)
		n += m
	}

	// Stack shuffles.
	line(`: -rot rot rot ;   ( a b c -- c a b )`)
	line(`: tuck swap over ; ( a b -- b a b )`)
	line(`: 2dup over over ; ( a b -- a b a b )`)

	// Arithmetic.
	line(`: sq dup * ;`)
	line(`: cube dup dup * * ;`)
	line(`: neg 0 swap - ;`)

	// Output; each takes nothing from the stack.
	line(`: cr '\n . ;`)
	line(`: tab '\t . ;`)

	return n, err
}
