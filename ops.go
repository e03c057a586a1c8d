package main

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// arith pops x then y, pushing (y op x). Int arithmetic wraps.
func (vm *VM) arith(op Op) error {
	if err := vm.stack.need(2); err != nil {
		return err
	}
	xv, _ := vm.stack.pop()
	yv, _ := vm.stack.pop()
	x, ok := xv.(Int)
	if !ok {
		return improper(op, "operand", xv)
	}
	y, ok := yv.(Int)
	if !ok {
		return improper(op, "operand", yv)
	}
	switch op {
	case OpAdd:
		vm.stack.push(y + x)
	case OpSub:
		vm.stack.push(y - x)
	case OpMul:
		vm.stack.push(y * x)
	case OpDiv:
		if x == 0 {
			return ErrDivideByZero
		}
		vm.stack.push(y / x)
	default:
		panic(opError(op))
	}
	return nil
}

func (vm *VM) print() error {
	val, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.writeString(val.String())
}

func (vm *VM) debugPrint() error {
	val, err := vm.stack.pop()
	if err != nil {
		return err
	}
	return vm.writeString(val.GoString() + "\n")
}

// input flushes output, so that any prompt is visible, then reads one integer
// token from input.
func (vm *VM) input() error {
	if err := vm.out.Flush(); err != nil {
		return err
	}
	tok, err := vm.scan()
	if err == io.EOF {
		return errors.Wrap(ErrImproperArgument, "input: no more input")
	} else if err != nil {
		return err
	}
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return errors.Wrapf(ErrImproperArgument, "input: %q is not an Int", tok)
	}
	vm.stack.push(Int(n))
	return nil
}

// store pops an address, then a value: ( val addr -- )
func (vm *VM) store() error {
	addr, err := vm.popAddr(OpStore)
	if err != nil {
		return err
	}
	val, err := vm.stack.pop()
	if err != nil {
		return improper(OpStore, "value", nil)
	}
	return vm.mem.stor(addr, val)
}

// retrieve replaces an address with its cell's value: ( addr -- val )
func (vm *VM) retrieve() error {
	addr, err := vm.popAddr(OpRetrieve)
	if err != nil {
		return err
	}
	val, err := vm.mem.load(addr)
	if err != nil {
		return err
	}
	vm.stack.push(val)
	return nil
}

func (vm *VM) popAddr(op Op) (Int, error) {
	val, err := vm.stack.pop()
	if err != nil {
		return 0, improper(op, "address", nil)
	}
	addr, ok := val.(Int)
	if !ok {
		return 0, improper(op, "address", val)
	}
	return addr, nil
}

func (vm *VM) variable(name string) error {
	addr, err := vm.mem.alloc()
	if err != nil {
		return err
	}
	vm.bind(name, varBinding(addr))
	return nil
}

func (vm *VM) constant(name string) error {
	val, err := vm.stack.pop()
	if err != nil {
		return err
	}
	vm.bind(name, constBinding{val})
	return nil
}
