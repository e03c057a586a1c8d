// Package grammar splits source text into tagged syntax nodes.
//
// Tokens are separated by whitespace. A "(" token starts a comment that runs
// through the next ")", and a "\" token starts a comment that runs to the end
// of the line.
//
//	Int       [+-]?[0-9]+          e.g. 42 -7
//	Float     [+-]?[0-9]+.[0-9]*   e.g. 1.5 -0.25 3.
//	          [+-]?.[0-9]+         e.g. .5 -.25
//	Char      'X                   e.g. 'a '\n '\t
//	Operator  + - * / . ? $ dup swap over rot ! @
//	Reserved  variable NAME | constant NAME
//	Define    : NAME ... ;
//	Keyword   anything else
//
// The grammar only decides which rule a token matches; it does not check
// that literals are in range or that chars are a single rune.
//
// Source bytes that are not valid UTF-8 read as U+FFFD, so a Char token
// holding a literal U+FFFD cannot be told apart from a decoding error, and
// classifies as an invalid token.
package grammar

import (
	"fmt"

	"github.com/jcorbin/stackforth/internal/fileinput"
)

// Rule tags a Node with the grammar rule that matched it.
type Rule uint8

// Rules; sub-rules appear only as the Inner node of their parent rule.
const (
	Invalid Rule = iota

	Int
	Float
	Char
	Keyword

	Operator // Inner: one of Add through Retrieve
	Add
	Sub
	Mul
	Div
	Print
	DebugPrint
	Input
	Dup
	Swap
	Over
	Rot
	Store
	Retrieve

	Reserved // Inner: Variable or Constant
	Variable // Inner: Ident
	Constant // Inner: Ident
	Ident

	Define // Inner: Ident followed by body nodes

	ruleMax
)

var ruleNames = [ruleMax]string{
	"invalid",
	"int", "float", "char", "keyword",
	"operator",
	"add", "sub", "mul", "div",
	"print", "debugprint", "input",
	"dup", "swap", "over", "rot",
	"store", "retrieve",
	"reserved", "variable", "constant", "ident",
	"define",
}

func (r Rule) String() string {
	if r < ruleMax {
		return ruleNames[r]
	}
	return fmt.Sprintf("rule(%d)", uint8(r))
}

// Node is one matched token, possibly with sub-rule nodes.
type Node struct {
	Rule  Rule
	Text  string
	Inner []Node
	Loc   fileinput.Location
}

// Sub returns the first inner node, if any.
func (n Node) Sub() (Node, bool) {
	if len(n.Inner) == 0 {
		return Node{}, false
	}
	return n.Inner[0], true
}

func (n Node) String() string {
	if len(n.Inner) == 0 {
		return fmt.Sprintf("%v(%q)", n.Rule, n.Text)
	}
	return fmt.Sprintf("%v(%q %v)", n.Rule, n.Text, n.Inner)
}

// SyntaxError reports source text that no grammar rule accepts.
// Incomplete is set when more input could have completed the text.
type SyntaxError struct {
	Loc        fileinput.Location
	Mess       string
	Incomplete bool
}

func (se SyntaxError) Error() string { return fmt.Sprintf("%v: %v", se.Loc, se.Mess) }
