package main

import (
	"bytes"
	"io"
	"strings"

	"github.com/jcorbin/stackforth/internal/fileinput"
	"github.com/jcorbin/stackforth/internal/flushio"
)

const defaultCallDepth = 1024

// VMOption customizes a VM created by New.
type VMOption interface {
	apply(vm *VM)
}

// VMOptions combines options, flattening any nested combinations.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	if len(all) == 1 {
		return all[0]
	}
	return all
}

// WithSource queues a program source for Run; sources run in the order given.
func WithSource(r io.Reader) VMOption { return sourceOption{r} }

// WithSourceWriter queues a source generated by w, named after w if it has a
// Name() string method.
func WithSourceWriter(w io.WriterTo) VMOption { return sourceWriterOption{w} }

// WithInput sets the stream read by the "$" operator.
func WithInput(r io.Reader) VMOption { return inputOption{r} }

// WithOutput sets the stream written by the "." and "?" operators.
func WithOutput(w io.Writer) VMOption { return outputOption{w} }

// WithTee adds another stream that receives a copy of all output.
func WithTee(w io.Writer) VMOption { return teeOption{w} }

// WithLogf sets a trace logging function; every executed instruction and
// every rebinding gets logged through it.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return logfnOption(logfn) }

// WithMemLimit limits how many cells variables may allocate; 0 means no limit.
func WithMemLimit(limit uint) VMOption { return memLimitOption(limit) }

// WithCallDepth limits how deeply defined words may nest; 0 means no limit.
func WithCallDepth(depth int) VMOption { return callDepthOption(depth) }

var defaultOptions = VMOptions(
	WithInput(strings.NewReader("")),
	WithOutput(nil),
	WithCallDepth(defaultCallDepth),
)

func (vm *VM) apply(opts ...VMOption) {
	if vm.in == nil {
		defaultOptions.apply(vm)
	}
	VMOptions(opts...).apply(vm)
}

type vmOptions []VMOption

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type sourceOption struct{ io.Reader }
type sourceWriterOption struct{ io.WriterTo }
type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type logfnOption func(mess string, args ...interface{})
type memLimitOption uint
type callDepthOption int

func (o sourceOption) apply(vm *VM) { vm.sources = append(vm.sources, o.Reader) }

func (o sourceWriterOption) apply(vm *VM) {
	var buf bytes.Buffer
	var src io.Reader = &buf
	if _, err := o.WriteTo(&buf); err != nil {
		src = io.MultiReader(&buf, errReader{err})
	}
	vm.sources = append(vm.sources, NamedReader(fileinput.NameOf(o.WriterTo), src))
}

func (o inputOption) apply(vm *VM) {
	vm.in = newRuneScanner(o.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.New(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.Tee(vm.out, flushio.New(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		vm.closers = append(vm.closers, cl)
	}
}

func (o logfnOption) apply(vm *VM)     { vm.logfn = o }
func (o memLimitOption) apply(vm *VM)  { vm.mem.limit = uint(o) }
func (o callDepthOption) apply(vm *VM) { vm.maxDepth = int(o) }
