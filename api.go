package main

import (
	"context"
	"io"
	"strings"

	"github.com/jcorbin/stackforth/internal/panicerr"
)

// New creates a new VM with the given options applied over defaults: empty
// input, discarded output, and a call depth limit of 1024.
func New(opts ...VMOption) *VM {
	var vm VM
	vm.apply(opts...)
	return &vm
}

// Run evaluates every source given by WithSource or WithSourceWriter, in
// order, stopping at the first error. Output is flushed before Run returns.
func (vm *VM) Run(ctx context.Context) error {
	return vm.guard(func() error {
		for len(vm.sources) > 0 {
			src := vm.sources[0]
			vm.sources = vm.sources[1:]
			if err := vm.eval(ctx, src); err != nil {
				return err
			}
		}
		return nil
	})
}

// Eval evaluates one more source against the VM's current state; any effects
// made before an error are retained.
func (vm *VM) Eval(ctx context.Context, src io.Reader) error {
	return vm.guard(func() error {
		return vm.eval(ctx, src)
	})
}

func (vm *VM) guard(f func() error) error {
	err := panicerr.Recover("VM", f)
	if ferr := vm.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

// Stack returns a copy of the operand stack, bottom first.
func (vm *VM) Stack() []Value {
	return append([]Value(nil), vm.stack...)
}

// WriteStack writes the display rendering of every stack value, bottom first,
// each followed by a space, and then a "<- Top" marker line.
func (vm *VM) WriteStack(w io.Writer) error {
	var sb strings.Builder
	for _, val := range vm.stack {
		sb.WriteString(val.String())
		sb.WriteByte(' ')
	}
	sb.WriteString("<- Top\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
