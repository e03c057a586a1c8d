package main

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// NamedReader attaches a name to r, which source locations then carry.
func NamedReader(name string, r io.Reader) io.Reader {
	return namedReader{r, name}
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

type errReader struct{ err error }

func (er errReader) Read(p []byte) (int, error) { return 0, er.err }

func newRuneScanner(r io.Reader) io.RuneScanner {
	if rs, is := r.(io.RuneScanner); is {
		return rs
	}
	return bufio.NewReader(r)
}

// scan reads the next whitespace delimited token from input; it returns
// io.EOF only if no token remains.
func (vm *VM) scan() (string, error) {
	var sb strings.Builder
	for {
		r, _, err := vm.in.ReadRune()
		if err == io.EOF && sb.Len() > 0 {
			return sb.String(), nil
		} else if err != nil {
			return "", err
		}
		if !unicode.IsSpace(r) {
			sb.WriteRune(r)
		} else if sb.Len() > 0 {
			return sb.String(), nil
		}
	}
}

func (vm *VM) writeString(s string) error {
	_, err := io.WriteString(vm.out, s)
	return err
}
