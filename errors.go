package main

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds; match them with errors.Is, since execution errors come
// wrapped with the location and text of the failed instruction.
var (
	ErrEmptyStack       = errors.New("empty stack")
	ErrImproperArgument = errors.New("improper argument")
	ErrDivideByZero     = errors.New("divide by zero")
	ErrInvalidMemory    = errors.New("invalid memory")

	errCallDepth = errors.New("call depth exceeded")
)

// InvalidWordError is a reference to an unbound name.
type InvalidWordError string

// InvalidTokenError is a syntax node that does not classify as an instruction.
type InvalidTokenError string

func (name InvalidWordError) Error() string  { return fmt.Sprintf("invalid word %q", string(name)) }
func (text InvalidTokenError) Error() string { return fmt.Sprintf("invalid token %q", string(text)) }

type underflowError struct {
	need, have int
}

func (err underflowError) Error() string {
	return fmt.Sprintf("%v: need %v, have %v", ErrEmptyStack, err.need, err.have)
}

func (err underflowError) Unwrap() error { return ErrEmptyStack }

type boundsError struct {
	addr Int
	size uint
	op   string
}

func (err boundsError) Error() string {
	return fmt.Sprintf("%v: %v @%v out of bounds [0, %v)", ErrImproperArgument, err.op, err.addr, err.size)
}

func (err boundsError) Unwrap() error { return ErrImproperArgument }

type memLimitError struct {
	addr uint
	op   string
}

func (lim memLimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", lim.op, lim.addr)
}

type opError Op

func (op opError) Error() string { return fmt.Sprintf("invalid op %d", uint8(op)) }

// improper reports an operand of the wrong variant, or a missing one.
func improper(op Op, what string, val Value) error {
	if val == nil {
		return errors.Wrapf(ErrImproperArgument, "%v: missing %v", op, what)
	}
	return errors.Wrapf(ErrImproperArgument, "%v: %v must be Int, not %+v", op, what, val)
}
