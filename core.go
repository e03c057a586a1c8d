package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/stackforth/internal/flushio"
)

type ioCore struct {
	in      io.RuneScanner
	out     flushio.WriteFlusher
	sources []io.Reader
	closers []io.Closer
}

// Close flushes any buffered output, then closes anything registered in
// closers, most recent first.
func (ioc *ioCore) Close() (err error) {
	if ioc.out != nil {
		err = ioc.out.Flush()
	}
	for i := len(ioc.closers) - 1; i >= 0; i-- {
		if cerr := ioc.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	ioc.closers = nil
	return err
}

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		mark += strings.Repeat(" ", n)
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
