package main

import (
	"fmt"
	"strings"
)

// binding is what a symbol names: a constBinding, a varBinding, or a
// wordBinding.
type binding interface {
	fmt.Stringer
	binding()
}

// constBinding is a value frozen when the constant was declared.
type constBinding struct{ Value }

// varBinding is the memory address allocated for a variable.
type varBinding uint

// wordBinding is a definition body, executed on every reference.
type wordBinding []Instruction

func (constBinding) binding() {}
func (varBinding) binding()   {}
func (wordBinding) binding()  {}

func (b constBinding) String() string { return fmt.Sprintf("constant %+v", b.Value) }
func (b varBinding) String() string   { return fmt.Sprintf("variable @%v", uint(b)) }
func (b wordBinding) String() string {
	parts := make([]string, 0, len(b)+2)
	parts = append(parts, ":")
	for _, in := range b {
		parts = append(parts, in.String())
	}
	return strings.Join(append(parts, ";"), " ")
}

// symbols binds names, remembering the order they were first declared.
type symbols struct {
	names    []string
	bindings map[string]binding
}

func (sym symbols) lookup(name string) (binding, bool) {
	b, ok := sym.bindings[name]
	return b, ok
}

// bind sets name's binding, replacing and returning any prior one.
func (sym *symbols) bind(name string, b binding) (prior binding) {
	if sym.bindings == nil {
		sym.bindings = make(map[string]binding)
	}
	prior, defined := sym.bindings[name]
	if !defined {
		sym.names = append(sym.names, name)
	}
	sym.bindings[name] = b
	return prior
}
