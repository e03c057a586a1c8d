package main

// memory is the flat region backing variables. It only grows by alloc, one
// empty cell at a time; a cell is set only by an explicit stor.
type memory struct {
	cells []Value // nil for an uninitialized cell

	limit uint
}

func (mem *memory) size() uint { return uint(len(mem.cells)) }

// alloc appends one uninitialized cell, returning its address.
func (mem *memory) alloc() (uint, error) {
	addr := mem.size()
	if lim := mem.limit; lim != 0 && addr >= lim {
		return 0, memLimitError{addr, "alloc"}
	}
	mem.cells = append(mem.cells, nil)
	return addr, nil
}

func (mem *memory) load(addr Int) (Value, error) {
	if err := mem.check(addr, "load"); err != nil {
		return nil, err
	}
	val := mem.cells[addr]
	if val == nil {
		return nil, ErrInvalidMemory
	}
	return val, nil
}

func (mem *memory) stor(addr Int, val Value) error {
	if err := mem.check(addr, "stor"); err != nil {
		return err
	}
	mem.cells[addr] = val
	return nil
}

func (mem *memory) check(addr Int, op string) error {
	if addr < 0 || uint(addr) >= mem.size() {
		return boundsError{addr, mem.size(), op}
	}
	return nil
}
