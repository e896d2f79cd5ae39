// Package parser is a recursive-descent parser over a token cursor: a
// token-index cursor over a flat slice, one statement parsed per loop
// iteration. It recognizes label definitions, directive pseudo-ops, and
// nullary/unary/binary instruction forms.
package parser

import (
	"fmt"
	"strings"

	"github.com/keurnel/x64asm/internal/ast"
	"github.com/keurnel/x64asm/internal/isa"
	"github.com/keurnel/x64asm/internal/token"
)

// Error is returned for any syntactic failure.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

type parser struct {
	tokens []token.Token
	pos    int
}

// Parse turns a tokenized source into instruction nodes, discarding
// comments along the way.
func Parse(tokens []token.Token) ([]ast.Instruction, error) {
	p := &parser{tokens: tokens}
	var out []ast.Instruction

	for {
		// Comments may appear anywhere between statements; discard them.
		for p.cur().Type == token.COMMENT {
			p.pos++
		}

		if p.cur().Type == token.EOF {
			return out, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
}

func (p *parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[idx]
}

func (p *parser) parseStatement() (ast.Instruction, error) {
	tok := p.cur()

	switch tok.Type {
	case token.IDENTIFIER:
		if strings.HasPrefix(tok.Text, ".") {
			return p.parsePseudoOp()
		}
		if p.peek(1).Type == token.COLON {
			p.pos += 2
			return ast.LabelDef{Name: tok.Text}, nil
		}
		return nil, &Error{Message: fmt.Sprintf("unexpected token: %s", tok.Debug())}

	case token.MNEMONIC:
		return p.parseInstruction(tok.Mnemonic)

	default:
		return nil, &Error{Message: fmt.Sprintf("unexpected token: %s", tok.Debug())}
	}
}

// parsePseudoOp consumes a `.name arg` directive. arg is a single token,
// rendered to its debug text; PseudoOp carries it but the encoder never
// inspects it — directives emit no code.
func (p *parser) parsePseudoOp() (ast.Instruction, error) {
	name := p.cur().Text
	p.pos++

	arg := ""
	switch p.cur().Type {
	case token.INTEGER, token.IDENTIFIER, token.REGISTER:
		arg = p.cur().Debug()
		p.pos++
	}

	return ast.PseudoOp{Name: name, Arg: arg}, nil
}

func (p *parser) parseInstruction(m isa.Mnemonic) (ast.Instruction, error) {
	p.pos++ // consume mnemonic

	var operands []ast.Operand
	if op, ok, err := p.tryParseOperand(); err != nil {
		return nil, err
	} else if ok {
		operands = append(operands, op)
		for p.cur().Type == token.COMMA {
			p.pos++
			next, err := p.parseOperand()
			if err != nil {
				return nil, err
			}
			operands = append(operands, next)
		}
	}

	if err := checkArity(m, len(operands)); err != nil {
		return nil, err
	}

	switch len(operands) {
	case 0:
		return ast.NullaryOp{Mnemonic: m}, nil
	case 1:
		return ast.UnaryOp{Mnemonic: m, Operand: operands[0]}, nil
	default:
		return ast.BinaryOp{Mnemonic: m, Dst: operands[0], Src: operands[1]}, nil
	}
}

func checkArity(m isa.Mnemonic, got int) error {
	want := isa.ArityOf(m)
	if int(want) != got {
		return &Error{Message: fmt.Sprintf("arity mismatch: %s expects %d operand(s), got %d", m, int(want), got)}
	}
	return nil
}

// tryParseOperand reports whether the current token can start an operand,
// without committing to consuming a full statement's worth of tokens if it
// can't. The one ambiguous case is IDENTIFIER: "label:" starts a new
// statement, so an IDENTIFIER immediately followed by COLON is never an
// operand of the current instruction.
func (p *parser) tryParseOperand() (ast.Operand, bool, error) {
	switch p.cur().Type {
	case token.INTEGER, token.REGISTER, token.LBRACKET:
		op, err := p.parseOperand()
		return op, true, err
	case token.IDENTIFIER:
		if p.peek(1).Type == token.COLON {
			return nil, false, nil
		}
		op, err := p.parseOperand()
		return op, true, err
	default:
		return nil, false, nil
	}
}

func (p *parser) parseOperand() (ast.Operand, error) {
	tok := p.cur()
	switch tok.Type {
	case token.INTEGER:
		p.pos++
		return ast.Immediate{Value: tok.Int}, nil

	case token.REGISTER:
		p.pos++
		return ast.RegisterOperand{Register: tok.Register}, nil

	case token.IDENTIFIER:
		p.pos++
		return ast.Label{Name: tok.Text}, nil

	case token.LBRACKET:
		return p.parseMemoryOperand()

	default:
		return nil, &Error{Message: fmt.Sprintf("unexpected token: %s", tok.Debug())}
	}
}

// parseMemoryOperand parses `[` Register ( ('+'|'-') Integer )? `]`.
func (p *parser) parseMemoryOperand() (ast.Operand, error) {
	p.pos++ // consume '['

	if p.cur().Type != token.REGISTER {
		return nil, &Error{Message: fmt.Sprintf("unexpected token: %s", p.cur().Debug())}
	}
	base := p.cur().Register
	p.pos++

	var disp *int32
	if p.cur().Type == token.PLUS || p.cur().Type == token.MINUS {
		sign := int32(1)
		if p.cur().Type == token.MINUS {
			sign = -1
		}
		p.pos++

		if p.cur().Type != token.INTEGER {
			return nil, &Error{Message: fmt.Sprintf("unexpected token: %s", p.cur().Debug())}
		}
		value := sign * int32(p.cur().Int)
		disp = &value
		p.pos++
	}

	if p.cur().Type != token.RBRACKET {
		return nil, &Error{Message: "unterminated memory operand"}
	}
	p.pos++

	return ast.Memory{Base: base, Disp: disp}, nil
}
