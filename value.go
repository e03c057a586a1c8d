package main

import (
	"fmt"
	"io"
	"strconv"
)

// Value is a runtime value: exactly one of Int, Char, or Float.
//
// Values format with their display rendering under %v and %s, and with their
// debug rendering, like Int(3), under %+v and %#v.
type Value interface {
	fmt.Stringer
	fmt.GoStringer
	value()
}

// Int is a signed 32-bit integer value.
type Int int32

// Char is a single unicode scalar value.
type Char rune

// Float is a 32-bit floating point value.
type Float float32

func (Int) value()   {}
func (Char) value()  {}
func (Float) value() {}

func (v Int) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Char) String() string  { return string(rune(v)) }
func (v Float) String() string { return strconv.FormatFloat(float64(v), 'f', -1, 32) }

func (v Int) GoString() string   { return "Int(" + v.String() + ")" }
func (v Char) GoString() string  { return "Char(" + v.String() + ")" }
func (v Float) GoString() string { return "Float(" + v.String() + ")" }

func (v Int) Format(f fmt.State, c rune)   { formatValue(f, c, v) }
func (v Char) Format(f fmt.State, c rune)  { formatValue(f, c, v) }
func (v Float) Format(f fmt.State, c rune) { formatValue(f, c, v) }

func formatValue(f fmt.State, c rune, v Value) {
	if c == 'v' && (f.Flag('+') || f.Flag('#')) {
		io.WriteString(f, v.GoString())
	} else {
		io.WriteString(f, v.String())
	}
}
