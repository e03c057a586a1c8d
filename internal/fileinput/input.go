package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a position in an Input source; Column counts runes from 1.
type Location struct {
	Name   string
	Line   int
	Column int
}

func (loc Location) String() string {
	if loc.Column == 0 {
		return fmt.Sprintf("%v:%v", loc.Name, loc.Line)
	}
	return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Column)
}

// Input implements sequential rune reading from a single named source,
// tracking the line and column of the next rune to facilitate user feedback.
type Input struct {
	rr   io.RuneReader
	next Location
	done bool
}

// New creates an Input reading from r. If r implements Name() string, that
// name is used for locations.
func New(r io.Reader) *Input {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &Input{
		rr:   rr,
		next: Location{Name: NameOf(r), Line: 1, Column: 1},
	}
}

// Pos returns the location of the next rune to be read.
func (in *Input) Pos() Location { return in.next }

// ReadRune reads one rune, advancing the tracked location past it.
// After the first error, every later call returns io.EOF.
func (in *Input) ReadRune() (rune, int, error) {
	if in.done {
		return 0, 0, io.EOF
	}
	r, n, err := in.rr.ReadRune()
	if n == 0 {
		if err == nil {
			err = io.ErrNoProgress
		}
		in.done = true
		return 0, 0, err
	}
	if r == '\n' {
		in.next.Line++
		in.next.Column = 1
	} else {
		in.next.Column++
	}
	return r, n, nil
}

// NameOf returns obj's Name(), or a placeholder naming its type.
func NameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
