// Package parser builds a syntax tree from minicalc source by recursive
// descent, one function per precedence level:
//
//	program        = statement* EOF
//	statement      = expression ";"
//	expression     = assignment
//	assignment     = equality ("=" assignment)?
//	equality       = relational (("==" | "!=") relational)*
//	relational     = additive ((">" | ">=" | "<" | "<=") relational)*
//	additive       = multiplicative (("+" | "-") multiplicative)*
//	multiplicative = unary (("*" | "/") unary)*
//	unary          = "+" primary | "-" primary | primary
//	primary        = "(" expression ")" | NUMBER | IDENTIFIER
//
// Assignment is right associative and its node keeps the assigned value as
// the Left child and the target as the Right child. "<" and "<=" are
// rewritten to ">" and ">=" with their operands swapped, and the right
// operand of every relational operator is a full relational, so relational
// chains associate to the right. "-x" is rewritten to "0 - x" and "+x" is
// just x. Both take a primary, so "--5" and "+-5" are syntax errors.
package parser

import (
	"go.skia.org/minicalc/minicalc/go/ast"
	"go.skia.org/minicalc/minicalc/go/lexer"
)

// DefaultMaxDepth bounds how deeply expressions may nest.
const DefaultMaxDepth = 1000

// Parser consumes tokens from a lexer with one token of lookahead.
type Parser struct {
	lex      *lexer.Lexer
	tok      lexer.Token
	depth    int
	maxDepth int
}

// New returns a Parser reading from lex. maxDepth <= 0 means
// DefaultMaxDepth.
func New(lex *lexer.Lexer, maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{
		lex:      lex,
		maxDepth: maxDepth,
	}
}

// Parse parses src with the default nesting limit.
func Parse(src string) (*ast.Program, error) {
	return New(lexer.New(src), DefaultMaxDepth).Program()
}

// Program parses statements until the end of input. The first lexical or
// syntax error aborts the parse.
func (p *Parser) Program() (*ast.Program, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	prog := &ast.Program{}
	for p.tok.Kind != lexer.EOF {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// consume advances past the current token if it is the operator op.
func (p *Parser) consume(op string) (bool, error) {
	if !p.tok.Is(op) {
		return false, nil
	}
	return true, p.advance()
}

func (p *Parser) expect(op string) error {
	ok, err := p.consume(op)
	if err != nil {
		return err
	}
	if !ok {
		return p.lex.ErrorAt(p.tok, "expected %q but found %s", op, p.tok)
	}
	return nil
}

// nested calls fn one level deeper, failing once maxDepth is exceeded.
func (p *Parser) nested(fn func() (ast.Node, error)) (ast.Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return nil, p.lex.ErrorAt(p.tok, "expression nested too deeply (limit %d)", p.maxDepth)
	}
	return fn()
}

func binary(op ast.Op, left, right ast.Node, at lexer.Token) *ast.Binary {
	return &ast.Binary{Op: op, Left: left, Right: right, Pos: at.Pos, Len: at.Len}
}

func (p *Parser) statement() (ast.Node, error) {
	node, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Separator); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) expression() (ast.Node, error) {
	return p.nested(p.assignment)
}

func (p *Parser) assignment() (ast.Node, error) {
	target, err := p.equality()
	if err != nil {
		return nil, err
	}
	at := p.tok
	ok, err := p.consume("=")
	if err != nil {
		return nil, err
	}
	if !ok {
		return target, nil
	}
	value, err := p.nested(p.assignment)
	if err != nil {
		return nil, err
	}
	return binary(ast.Assign, value, target, at), nil
}

func (p *Parser) equality() (ast.Node, error) {
	node, err := p.relational()
	if err != nil {
		return nil, err
	}
	for {
		at := p.tok
		var op ast.Op
		if ok, err := p.consume("=="); err != nil {
			return nil, err
		} else if ok {
			op = ast.Equal
		} else if ok, err := p.consume("!="); err != nil {
			return nil, err
		} else if ok {
			op = ast.NotEqual
		} else {
			return node, nil
		}
		right, err := p.relational()
		if err != nil {
			return nil, err
		}
		node = binary(op, node, right, at)
	}
}

// relationalOps maps each relational operator to the node it builds and
// whether its operands are swapped.
var relationalOps = []struct {
	text    string
	op      ast.Op
	swapped bool
}{
	{">", ast.GreaterThan, false},
	{"<", ast.GreaterThan, true},
	{">=", ast.GreaterOrEqual, false},
	{"<=", ast.GreaterOrEqual, true},
}

func (p *Parser) relational() (ast.Node, error) {
	node, err := p.additive()
	if err != nil {
		return nil, err
	}
outer:
	for {
		at := p.tok
		for _, rel := range relationalOps {
			ok, err := p.consume(rel.text)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			right, err := p.nested(p.relational)
			if err != nil {
				return nil, err
			}
			if rel.swapped {
				node = binary(rel.op, right, node, at)
			} else {
				node = binary(rel.op, node, right, at)
			}
			continue outer
		}
		return node, nil
	}
}

func (p *Parser) additive() (ast.Node, error) {
	node, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		at := p.tok
		var op ast.Op
		switch {
		case at.Is("+"):
			op = ast.Add
		case at.Is("-"):
			op = ast.Sub
		default:
			return node, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		node = binary(op, node, right, at)
	}
}

func (p *Parser) multiplicative() (ast.Node, error) {
	node, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		at := p.tok
		var op ast.Op
		switch {
		case at.Is("*"):
			op = ast.Mul
		case at.Is("/"):
			op = ast.Div
		default:
			return node, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		node = binary(op, node, right, at)
	}
}

func (p *Parser) unary() (ast.Node, error) {
	at := p.tok
	if ok, err := p.consume("+"); err != nil {
		return nil, err
	} else if ok {
		return p.primary()
	}
	if ok, err := p.consume("-"); err != nil {
		return nil, err
	} else if ok {
		operand, err := p.primary()
		if err != nil {
			return nil, err
		}
		return binary(ast.Sub, &ast.Number{Value: 0, Pos: at.Pos, Len: at.Len}, operand, at), nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Node, error) {
	if ok, err := p.consume("("); err != nil {
		return nil, err
	} else if ok {
		node, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return node, nil
	}
	tok := p.tok
	var node ast.Node
	switch tok.Kind {
	case lexer.Number:
		node = &ast.Number{Value: tok.Value, Pos: tok.Pos, Len: tok.Len}
	case lexer.Identifier:
		node = &ast.Variable{Name: tok.Text, Pos: tok.Pos, Len: tok.Len}
	default:
		return nil, p.lex.ErrorAt(tok, "expected a number, a variable or \"(\" but found %s", tok)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return node, nil
}
