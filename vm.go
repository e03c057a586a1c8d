package main

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/jcorbin/stackforth/internal/grammar"
	"github.com/jcorbin/stackforth/internal/panicerr"
)

// VM is a single interpreter session: one operand stack, one memory region,
// and one symbol table, shared by every source it evaluates.
type VM struct {
	ioCore
	logging

	stack   stack
	mem     memory
	symbols symbols

	depth    int
	maxDepth int
}

// eval lexes src one node at a time, classifying and executing each before
// reading the next; so an error halts evaluation with all prior effects
// (output included) already done.
func (vm *VM) eval(ctx context.Context, src io.Reader) error {
	lex := grammar.NewLexer(src)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		node, err := lex.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		in, err := classify(node)
		if err != nil {
			return errors.Wrapf(err, "%v", node.Loc)
		}
		if err := vm.step(ctx, in); err != nil {
			return err
		}
	}
}

func (vm *VM) exec(ctx context.Context, prog []Instruction) error {
	for _, in := range prog {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := vm.step(ctx, in); err != nil {
			return err
		}
	}
	return nil
}

func (vm *VM) step(ctx context.Context, in Instruction) error {
	if vm.logfn != nil {
		vm.logf(">", "%v -- %+v", in, []Value(vm.stack))
	}
	if err := vm.do(ctx, in); err != nil {
		if in.Loc.Line == 0 {
			return errors.Wrapf(err, "%v", in)
		}
		return errors.Wrapf(err, "%v %v", in.Loc, in)
	}
	return nil
}

func (vm *VM) do(ctx context.Context, in Instruction) error {
	switch in.Op {
	case OpPush:
		vm.stack.push(in.Lit)
		return nil

	case OpAdd, OpSub, OpMul, OpDiv:
		return vm.arith(in.Op)

	case OpPrint:
		return vm.print()
	case OpDebugPrint:
		return vm.debugPrint()
	case OpInput:
		return vm.input()

	case OpDup:
		return vm.stack.dup()
	case OpSwap:
		return vm.stack.swap()
	case OpOver:
		return vm.stack.over()
	case OpRot:
		return vm.stack.rot()

	case OpStore:
		return vm.store()
	case OpRetrieve:
		return vm.retrieve()

	case OpVariable:
		return vm.variable(in.Name)
	case OpConstant:
		return vm.constant(in.Name)
	case OpDefine:
		vm.bind(in.Name, wordBinding(in.Body))
		return nil

	case OpCall:
		return vm.call(ctx, in.Name)

	default:
		panic(opError(in.Op))
	}
}

func (vm *VM) bind(name string, b binding) {
	if prior := vm.symbols.bind(name, b); prior != nil {
		vm.logf("!", "rebind %q from %v to %v", name, prior, b)
	}
}

func (vm *VM) call(ctx context.Context, name string) error {
	b, defined := vm.symbols.lookup(name)
	if !defined {
		return InvalidWordError(name)
	}
	switch b := b.(type) {
	case constBinding:
		vm.stack.push(b.Value)
	case varBinding:
		vm.stack.push(Int(b))
	case wordBinding:
		if vm.maxDepth > 0 && vm.depth >= vm.maxDepth {
			return errors.Wrapf(errCallDepth, "calling %q at depth %v", name, vm.depth)
		}
		vm.depth++
		defer func() { vm.depth-- }()
		if vm.logfn != nil {
			defer vm.withLogPrefix("  ")()
		}
		return vm.exec(ctx, b)
	default:
		panicerr.Defectf("unknown binding type %T for %q", b, name)
	}
	return nil
}
