package main

// stack is the operand stack; its last element is the top.
//
// Every primitive checks its depth before changing anything, so a failed
// primitive leaves the stack as it was.
type stack []Value

func (s stack) need(n int) error {
	if len(s) < n {
		return underflowError{need: n, have: len(s)}
	}
	return nil
}

func (s *stack) push(val Value) { *s = append(*s, val) }

func (s *stack) pop() (Value, error) {
	if err := s.need(1); err != nil {
		return nil, err
	}
	i := len(*s) - 1
	val := (*s)[i]
	*s = (*s)[:i]
	return val, nil
}

// dup copies the top value: ( x -- x x )
func (s *stack) dup() error {
	if err := s.need(1); err != nil {
		return err
	}
	s.push((*s)[len(*s)-1])
	return nil
}

// swap exchanges the top two values: ( y x -- x y )
func (s *stack) swap() error {
	if err := s.need(2); err != nil {
		return err
	}
	st, n := *s, len(*s)
	st[n-2], st[n-1] = st[n-1], st[n-2]
	return nil
}

// over copies the second value to the top: ( y x -- y x y )
func (s *stack) over() error {
	if err := s.need(2); err != nil {
		return err
	}
	s.push((*s)[len(*s)-2])
	return nil
}

// rot pops x (the top), then y, then z, and pushes y, x, z; so the third
// value moves up to the top: ( z y x -- y x z )
func (s *stack) rot() error {
	if err := s.need(3); err != nil {
		return err
	}
	st, n := *s, len(*s)
	z, y, x := st[n-3], st[n-2], st[n-1]
	st[n-3], st[n-2], st[n-1] = y, x, z
	return nil
}
