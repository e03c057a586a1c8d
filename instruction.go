package main

import (
	"fmt"
	"strings"

	"github.com/jcorbin/stackforth/internal/fileinput"
)

// Op is the kind of an Instruction.
type Op uint8

const (
	OpPush       Op = iota // <literal>  push Lit
	OpAdd                  // +          ( y x -- y+x )
	OpSub                  // -          ( y x -- y-x )
	OpMul                  // *          ( y x -- y*x )
	OpDiv                  // /          ( y x -- y/x )
	OpPrint                // .          pop and print the display rendering
	OpDebugPrint           // ?          pop and print the debug rendering and a newline
	OpInput                // $          read an integer token from input
	OpDup                  // dup        ( x -- x x )
	OpSwap                 // swap       ( y x -- x y )
	OpOver                 // over       ( y x -- y x y )
	OpRot                  // rot        ( z y x -- y x z )
	OpStore                // !          ( val addr -- )
	OpRetrieve             // @          ( addr -- val )
	OpVariable             // variable   bind Name to a new memory cell
	OpConstant             // constant   bind Name to a popped value
	OpDefine               // :          bind Name to Body
	OpCall                 // <name>     run Name's binding

	opMax
)

var opNames = [opMax]string{
	"push",
	"add", "sub", "mul", "div",
	"print", "debugprint", "input",
	"dup", "swap", "over", "rot",
	"store", "retrieve",
	"variable", "constant", "define",
	"call",
}

func (op Op) String() string {
	if op < opMax {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Instruction is one classified, executable unit of source.
type Instruction struct {
	Op   Op
	Lit  Value         // OpPush
	Name string        // OpVariable, OpConstant, OpDefine, OpCall
	Body []Instruction // OpDefine

	Text string // source text, if classified from source
	Loc  fileinput.Location
}

func (in Instruction) String() string {
	if in.Text != "" {
		return in.Text
	}
	switch in.Op {
	case OpPush:
		return fmt.Sprintf("%+v", in.Lit)
	case OpVariable, OpConstant:
		return in.Op.String() + " " + in.Name
	case OpDefine:
		return ": " + in.Name + strings.TrimPrefix(wordBinding(in.Body).String(), ":")
	case OpCall:
		return in.Name
	}
	return in.Op.String()
}
