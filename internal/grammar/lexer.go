package grammar

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/jcorbin/stackforth/internal/fileinput"
)

var (
	intPattern   = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatPattern = regexp.MustCompile(`^[+-]?([0-9]+\.[0-9]*|\.[0-9]+)$`)
)

var operators = map[string]Rule{
	"+":    Add,
	"-":    Sub,
	"*":    Mul,
	"/":    Div,
	".":    Print,
	"?":    DebugPrint,
	"$":    Input,
	"dup":  Dup,
	"swap": Swap,
	"over": Over,
	"rot":  Rot,
	"!":    Store,
	"@":    Retrieve,
}

var reserved = map[string]Rule{
	"variable": Variable,
	"constant": Constant,
}

// errEnd is returned by next when it reads the ";" closing a definition.
var errEnd = errors.New("end of definition")

// Lexer reads Nodes from a single source.
type Lexer struct {
	in    *fileinput.Input
	delim rune // ended the last word; 0 at EOF
}

// NewLexer creates a Lexer reading from r; if r has a Name() string method,
// node locations carry that name.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{in: fileinput.New(r)}
}

// Next returns the next node, or io.EOF after the last one.
func (lex *Lexer) Next() (Node, error) { return lex.next(nil) }

// Scan reads every node from r, stopping at the first error.
func Scan(r io.Reader) ([]Node, error) {
	lex := NewLexer(r)
	var nodes []Node
	for {
		node, err := lex.Next()
		if err == io.EOF {
			return nodes, nil
		} else if err != nil {
			return nodes, err
		}
		nodes = append(nodes, node)
	}
}

// Incomplete returns true if err is a SyntaxError that more input could fix.
func Incomplete(err error) bool {
	var se SyntaxError
	return errors.As(err, &se) && se.Incomplete
}

func (lex *Lexer) next(def *Node) (Node, error) {
	for {
		tok, loc, err := lex.word()
		if err == io.EOF && def != nil {
			return Node{}, SyntaxError{
				Loc:        def.Loc,
				Mess:       fmt.Sprintf("unterminated definition of %q", def.Inner[0].Text),
				Incomplete: true,
			}
		} else if err != nil {
			return Node{}, err
		}

		switch tok {
		case "(":
			if err := lex.skipPast(')'); err == io.EOF {
				return Node{}, SyntaxError{Loc: loc, Mess: "unterminated comment", Incomplete: true}
			} else if err != nil {
				return Node{}, err
			}

		case `\`:
			if lex.delim == '\n' || lex.delim == 0 {
				continue
			}
			if err := lex.skipPast('\n'); err != nil && err != io.EOF {
				return Node{}, err
			}

		case ":":
			if def != nil {
				return Node{}, SyntaxError{Loc: loc, Mess: fmt.Sprintf("nested definition in %q", def.Inner[0].Text)}
			}
			return lex.define(loc)

		case ";":
			if def == nil {
				return Node{}, SyntaxError{Loc: loc, Mess: `unexpected ";"`}
			}
			return Node{}, errEnd

		default:
			if rule, ok := reserved[tok]; ok {
				return lex.reserved(tok, rule, loc)
			}
			return match(tok, loc), nil
		}
	}
}

func (lex *Lexer) define(loc fileinput.Location) (Node, error) {
	name, err := lex.name(":", loc)
	if err != nil {
		return Node{}, err
	}
	def := Node{Rule: Define, Loc: loc, Inner: []Node{name}}
	parts := []string{":", name.Text}
	for {
		node, err := lex.next(&def)
		if err == errEnd {
			break
		} else if err != nil {
			return Node{}, err
		}
		def.Inner = append(def.Inner, node)
		parts = append(parts, node.Text)
	}
	def.Text = strings.Join(append(parts, ";"), " ")
	return def, nil
}

func (lex *Lexer) reserved(tok string, rule Rule, loc fileinput.Location) (Node, error) {
	name, err := lex.name(tok, loc)
	if err != nil {
		return Node{}, err
	}
	return Node{
		Rule: Reserved,
		Text: tok + " " + name.Text,
		Loc:  loc,
		Inner: []Node{{
			Rule:  rule,
			Text:  tok,
			Loc:   loc,
			Inner: []Node{name},
		}},
	}, nil
}

func (lex *Lexer) name(after string, loc fileinput.Location) (Node, error) {
	tok, at, err := lex.word()
	if err == io.EOF {
		return Node{}, SyntaxError{
			Loc:        loc,
			Mess:       fmt.Sprintf("expected name after %q", after),
			Incomplete: true,
		}
	} else if err != nil {
		return Node{}, err
	}
	if !isName(tok) {
		return Node{}, SyntaxError{Loc: at, Mess: fmt.Sprintf("invalid name %q after %q", tok, after)}
	}
	return Node{Rule: Ident, Text: tok, Loc: at}, nil
}

func isName(tok string) bool {
	switch tok {
	case ":", ";", "(", `\`:
		return false
	}
	if _, ok := reserved[tok]; ok {
		return false
	}
	return match(tok, fileinput.Location{}).Rule == Keyword
}

func match(tok string, loc fileinput.Location) Node {
	node := Node{Text: tok, Loc: loc}
	if rule, ok := operators[tok]; ok {
		node.Rule = Operator
		node.Inner = []Node{{Rule: rule, Text: tok, Loc: loc}}
	} else if intPattern.MatchString(tok) {
		node.Rule = Int
	} else if floatPattern.MatchString(tok) {
		node.Rule = Float
	} else if strings.HasPrefix(tok, "'") && len(tok) > 1 {
		node.Rule = Char
	} else {
		node.Rule = Keyword
	}
	return node
}

// word reads the next whitespace delimited token, returning the location of
// its first rune.
func (lex *Lexer) word() (string, fileinput.Location, error) {
	var sb strings.Builder
	var loc fileinput.Location
	for {
		at := lex.in.Pos()
		r, _, err := lex.in.ReadRune()
		if err == io.EOF && sb.Len() > 0 {
			lex.delim = 0
			return sb.String(), loc, nil
		} else if err != nil {
			return "", at, err
		}
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			if sb.Len() > 0 {
				lex.delim = r
				return sb.String(), loc, nil
			}
			continue
		}
		if sb.Len() == 0 {
			loc = at
		}
		sb.WriteRune(r)
	}
}

func (lex *Lexer) skipPast(end rune) error {
	for {
		r, _, err := lex.in.ReadRune()
		if err != nil {
			return err
		}
		if r == end {
			return nil
		}
	}
}
