package flushio

import (
	"bufio"
	"io"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// Discard is a WriteFlusher that drops all writes.
var Discard WriteFlusher = nopFlusher{io.Discard}

// New creates a flushable writer around w:
// - io.Discard and in-memory buffers get a noop Flush
// - an existing WriteFlusher is returned as-is
// - anything else is wrapped in a bufio.Writer
func New(w io.Writer) WriteFlusher {
	if w == nil || w == io.Discard {
		return Discard
	}
	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	// in memory buffers, as implemented by types like bytes.Buffer and
	// strings.Builder, do not need to be flushed
	type buffer interface {
		io.Writer
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// Tee combines any number of WriteFlusher-s into a single one that writes
// into and flushes all of them, in order. Nil entries are skipped, and nested
// Tee-s are flattened.
func Tee(wfs ...WriteFlusher) WriteFlusher {
	var all tee
	for _, wf := range wfs {
		if many, ok := wf.(tee); ok {
			all = append(all, many...)
		} else if wf != nil {
			all = append(all, wf)
		}
	}
	switch len(all) {
	case 0:
		return Discard
	case 1:
		return all[0]
	default:
		return all
	}
}

type tee []WriteFlusher

func (wfs tee) Write(p []byte) (n int, err error) {
	for _, wf := range wfs {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (wfs tee) Flush() (err error) {
	for _, wf := range wfs {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}
