package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  depth: %v/%v\n", dump.vm.depth, dump.vm.maxDepth)
	dump.dumpStack()
	dump.dumpMem()
	dump.dumpSymbols()
}

func (dump *vmDumper) dumpStack() {
	fmt.Fprintf(dump.out, "  stack: %+v\n", []Value(dump.vm.stack))
}

func (dump *vmDumper) dumpMem() {
	mem := &dump.vm.mem
	if mem.limit != 0 {
		fmt.Fprintf(dump.out, "# Memory %v/%v\n", mem.size(), mem.limit)
	} else {
		fmt.Fprintf(dump.out, "# Memory %v\n", mem.size())
	}
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(int(mem.size())))
	}

	names := dump.varNames()
	var buf strings.Builder
	for addr, val := range mem.cells {
		fmt.Fprintf(&buf, "  @%-*v ", dump.addrWidth, addr)
		if val == nil {
			buf.WriteString("<empty>")
		} else {
			fmt.Fprintf(&buf, "%+v", val)
		}
		if name, ok := names[uint(addr)]; ok {
			buf.WriteByte(' ')
			buf.WriteString(name)
		}
		buf.WriteByte('\n')
		io.WriteString(dump.out, buf.String())
		buf.Reset()
	}
}

// varNames maps memory addresses to the variable names currently bound to
// them; rebinding a variable leaves its former cell unnamed.
func (dump *vmDumper) varNames() map[uint]string {
	names := make(map[uint]string)
	for _, name := range dump.vm.symbols.names {
		if addr, ok := dump.vm.symbols.bindings[name].(varBinding); ok {
			names[uint(addr)] = name
		}
	}
	return names
}

func (dump *vmDumper) dumpSymbols() {
	fmt.Fprintf(dump.out, "# Symbols\n")
	for _, name := range dump.vm.symbols.names {
		fmt.Fprintf(dump.out, "  %v: %v\n", name, dump.vm.symbols.bindings[name])
	}
}
