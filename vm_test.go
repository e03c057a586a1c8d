package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/stackforth/internal/logio"
	"github.com/jcorbin/stackforth/internal/panicerr"
)

type vmTestCases []vmTestCase

func (vmts vmTestCases) run(t *testing.T) {
	for _, vmt := range vmts {
		t.Run(vmt.name, vmt.run)
	}
}

func vmTest(name string) (vmt vmTestCase) {
	vmt.name = name
	return vmt
}

type optFunc func(vm *VM)

func (f optFunc) apply(vm *VM) { f(vm) }

type vmTestCase struct {
	name    string
	opts    []interface{}
	ops     []func(ctx context.Context, vm *VM) error
	expect  []func(t *testing.T, vm *VM)
	wantErr error
	errMess string

	nextSourceID int
}

func (vmt vmTestCase) withOptions(opts ...VMOption) vmTestCase {
	for _, opt := range opts {
		vmt.opts = append(vmt.opts, opt)
	}
	return vmt
}

func (vmt vmTestCase) withStack(values ...Value) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		vm.stack = append(vm.stack, values...)
	}))
	return vmt
}

func (vmt vmTestCase) withVariable(name string, val Value) vmTestCase {
	vmt.opts = append(vmt.opts, optFunc(func(vm *VM) {
		addr, err := vm.mem.alloc()
		if err != nil {
			panic(err)
		}
		if val != nil {
			vm.mem.cells[addr] = val
		}
		vm.symbols.bind(name, varBinding(addr))
	}))
	return vmt
}

func (vmt vmTestCase) withMemLimit(limit uint) vmTestCase {
	vmt.opts = append(vmt.opts, WithMemLimit(limit))
	return vmt
}

func (vmt vmTestCase) withCallDepth(depth int) vmTestCase {
	vmt.opts = append(vmt.opts, WithCallDepth(depth))
	return vmt
}

func (vmt vmTestCase) withSource(src string) vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		vmt.nextSourceID++
		return WithSource(NamedReader(vmt.sourceName(t, vmt.nextSourceID), strings.NewReader(src)))
	})
	return vmt
}

func (vmt vmTestCase) withNamedSource(name, src string) vmTestCase {
	vmt.opts = append(vmt.opts, WithSource(NamedReader(name, strings.NewReader(src))))
	return vmt
}

func (vmt vmTestCase) withPrelude() vmTestCase {
	vmt.opts = append(vmt.opts, WithSourceWriter(prelude))
	return vmt
}

func (vmt vmTestCase) withInput(input string) vmTestCase {
	vmt.opts = append(vmt.opts, WithInput(strings.NewReader(input)))
	return vmt
}

func (vmt vmTestCase) sourceName(t *testing.T, id int) string {
	name := t.Name()
	if id > 1 {
		name += "_" + strconv.Itoa(id)
	}
	return name
}

// do adds a step that executes the given instructions directly; any do steps
// replace the default of running queued sources.
func (vmt vmTestCase) do(prog ...Instruction) vmTestCase {
	vmt.ops = append(vmt.ops, func(ctx context.Context, vm *VM) error {
		return vm.exec(ctx, prog)
	})
	return vmt
}

// eval adds a step that evaluates src against the VM, as a REPL entry does.
func (vmt vmTestCase) eval(src string) vmTestCase {
	vmt.ops = append(vmt.ops, func(ctx context.Context, vm *VM) error {
		return vm.Eval(ctx, NamedReader("eval", strings.NewReader(src)))
	})
	return vmt
}

func (vmt vmTestCase) expectError(err error) vmTestCase {
	vmt.wantErr = err
	return vmt
}

func (vmt vmTestCase) expectErrorMessage(mess string) vmTestCase {
	vmt.errMess = mess
	return vmt
}

func (vmt vmTestCase) expectStack(values ...Value) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if values == nil {
			values = []Value{}
		}
		assert.Equal(t, values, vm.Stack(), "expected stack values")
	})
	return vmt
}

func (vmt vmTestCase) expectMemAt(addr uint, val Value) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		if assert.True(t, addr < vm.mem.size(), "expected memory cell @%v to exist", addr) {
			assert.Equal(t, val, vm.mem.cells[addr], "expected memory value @%v", addr)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectBinding(name string, desc string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		b, defined := vm.symbols.lookup(name)
		if desc == "" {
			assert.False(t, defined, "expected %q to be unbound", name)
		} else if assert.True(t, defined, "expected %q to be bound", name) {
			assert.Equal(t, desc, b.String(), "expected %q binding", name)
		}
	})
	return vmt
}

func (vmt vmTestCase) expectOutput(output string) vmTestCase {
	var out strings.Builder
	vmt.opts = append(vmt.opts, WithOutput(&out))
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return vmt
}

func (vmt vmTestCase) expectDump(dump string) vmTestCase {
	vmt.expect = append(vmt.expect, func(t *testing.T, vm *VM) {
		var out strings.Builder
		vmDumper{
			vm:  vm,
			out: &out,
		}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return vmt
}

func (vmt vmTestCase) withTestOutput() vmTestCase {
	vmt.opts = append(vmt.opts, func(vmt *vmTestCase, t *testing.T) VMOption {
		return WithTee(&logio.Writer{Logf: t.Logf, Prefix: "out: "})
	})
	return vmt
}

func (vmt vmTestCase) run(t *testing.T) {
	const timeout = time.Second

	var trace strings.Builder
	vm := vmt.buildVM(t)
	WithLogf(func(mess string, args ...interface{}) {
		fmt.Fprintf(&trace, mess+"\n", args...)
	}).apply(vm)
	defer func() {
		if t.Failed() {
			t.Logf("trace:\n%v", trace.String())
			vmt.dumpToTest(t, vm)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := vmt.runVM(ctx, vm)
	if vmt.wantErr != nil {
		assert.True(t, errors.Is(err, vmt.wantErr), "expected error: %v\ngot: %+v", vmt.wantErr, err)
	} else if vmt.errMess == "" {
		assert.NoError(t, err, "unexpected VM run error")
	}
	if vmt.errMess != "" {
		assert.EqualError(t, err, vmt.errMess)
	}

	for _, expect := range vmt.expect {
		expect(t, vm)
	}
}

func (vmt vmTestCase) runVM(ctx context.Context, vm *VM) (rerr error) {
	defer func() {
		if err := vm.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("vm.Close failed: %w", err)
		}
	}()

	if len(vmt.ops) == 0 {
		return vm.Run(ctx)
	}
	return panicerr.Recover("vmTestCase.ops", func() error {
		for _, op := range vmt.ops {
			if err := op(ctx, vm); err != nil {
				return err
			}
		}
		return nil
	})
}

func (vmt vmTestCase) buildVM(t *testing.T) *VM {
	var opts []VMOption
	for _, o := range vmt.opts {
		switch impl := o.(type) {
		case func(vmt *vmTestCase, t *testing.T) VMOption:
			opts = append(opts, impl(&vmt, t))
		case VMOption:
			opts = append(opts, impl)
		default:
			t.Logf("unsupported vmTestCase opt type %T", o)
			t.FailNow()
		}
	}
	return New(opts...)
}

func (vmt vmTestCase) dumpToTest(t *testing.T, vm *VM) {
	lw := logio.Writer{Logf: t.Logf}
	defer lw.Close()
	vmDumper{vm: vm, out: &lw}.dump()
}

//// utilities

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func push(val Value) Instruction   { return Instruction{Op: OpPush, Lit: val} }
func call(name string) Instruction { return Instruction{Op: OpCall, Name: name} }
func op(op Op) Instruction         { return Instruction{Op: op} }
