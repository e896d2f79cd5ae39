// Package token defines the lexical tokens produced by the tokenizer and
// consumed by the parser.
package token

import "fmt"

// Type classifies a Token. Values are a small closed set — the tokenizer
// never needs an open vocabulary, so an int-backed enum is enough.
type Type int

const (
	ILLEGAL Type = iota
	EOF

	INTEGER    // decimal digit run, e.g. "42"
	IDENTIFIER // label name or unrecognised word
	MNEMONIC   // recognised instruction mnemonic
	REGISTER   // recognised register name
	COMMENT    // ';' to end of line, text excludes ';' and newline

	COMMA    // ,
	COLON    // :
	LBRACKET // [
	RBRACKET // ]
	PLUS     // +
	MINUS    // -
)

// String renders a Type for diagnostics. Tokens carry no source location,
// so this and Token.Debug are the only way an error message can describe
// one.
func (t Type) String() string {
	switch t {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case INTEGER:
		return "INTEGER"
	case IDENTIFIER:
		return "IDENTIFIER"
	case MNEMONIC:
		return "MNEMONIC"
	case REGISTER:
		return "REGISTER"
	case COMMENT:
		return "COMMENT"
	case COMMA:
		return "COMMA"
	case COLON:
		return "COLON"
	case LBRACKET:
		return "LBRACKET"
	case RBRACKET:
		return "RBRACKET"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}
