package main

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jcorbin/stackforth/internal/grammar"
	"github.com/jcorbin/stackforth/internal/panicerr"
)

var operatorOps = map[grammar.Rule]Op{
	grammar.Add:        OpAdd,
	grammar.Sub:        OpSub,
	grammar.Mul:        OpMul,
	grammar.Div:        OpDiv,
	grammar.Print:      OpPrint,
	grammar.DebugPrint: OpDebugPrint,
	grammar.Input:      OpInput,
	grammar.Dup:        OpDup,
	grammar.Swap:       OpSwap,
	grammar.Over:       OpOver,
	grammar.Rot:        OpRot,
	grammar.Store:      OpStore,
	grammar.Retrieve:   OpRetrieve,
}

var charEscapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t")

// classify converts one syntax node into one instruction.
//
// Nodes that the grammar should never have produced, like an operator with an
// unknown sub-rule, are defects and panic.
func classify(node grammar.Node) (Instruction, error) {
	in := Instruction{Text: node.Text, Loc: node.Loc}
	switch node.Rule {
	case grammar.Int:
		n, err := strconv.ParseInt(node.Text, 10, 32)
		if err != nil {
			return in, InvalidTokenError(node.Text)
		}
		in.Op, in.Lit = OpPush, Int(n)

	case grammar.Float:
		f, err := strconv.ParseFloat(node.Text, 32)
		if err != nil {
			return in, InvalidTokenError(node.Text)
		}
		in.Op, in.Lit = OpPush, Float(f)

	case grammar.Char:
		r, ok := parseChar(node.Text)
		if !ok {
			return in, InvalidTokenError(node.Text)
		}
		in.Op, in.Lit = OpPush, Char(r)

	case grammar.Operator:
		sub := subNode(node)
		op, ok := operatorOps[sub.Rule]
		if !ok {
			panicerr.Defectf("unknown operator rule %v in %v", sub.Rule, node)
		}
		in.Op = op

	case grammar.Reserved:
		kw := subNode(node)
		switch kw.Rule {
		case grammar.Variable:
			in.Op = OpVariable
		case grammar.Constant:
			in.Op = OpConstant
		default:
			panicerr.Defectf("unknown reserved rule %v in %v", kw.Rule, node)
		}
		in.Name = subNode(kw).Text

	case grammar.Define:
		in.Op = OpDefine
		in.Name = subNode(node).Text
		for _, sub := range node.Inner[1:] {
			body, err := classify(sub)
			if err != nil {
				return in, err
			}
			in.Body = append(in.Body, body)
		}

	case grammar.Keyword:
		in.Op, in.Name = OpCall, node.Text

	default:
		return in, InvalidTokenError(node.Text)
	}
	return in, nil
}

func subNode(node grammar.Node) grammar.Node {
	sub, ok := node.Sub()
	if !ok {
		panicerr.Defectf("missing inner node in %v", node)
	}
	return sub
}

// parseChar strips the leading quote and resolves escapes; what remains must
// be exactly one rune.
func parseChar(text string) (rune, bool) {
	if !strings.HasPrefix(text, "'") {
		return 0, false
	}
	s := charEscapes.Replace(text[1:])
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}
