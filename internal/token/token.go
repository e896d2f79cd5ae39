package token

import (
	"fmt"

	"github.com/keurnel/x64asm/internal/isa"
)

// Token is a tagged lexical value. Only the fields relevant to the current
// Type are meaningful — typed payload fields mean the parser never has to
// re-parse a literal string to recover a Mnemonic or Register value.
//
// Tokens deliberately carry no source location: error messages identify
// tokens by their debug form instead.
type Token struct {
	Type Type

	Int      uint32      // valid when Type == INTEGER
	Text     string      // valid when Type == IDENTIFIER or COMMENT
	Mnemonic isa.Mnemonic // valid when Type == MNEMONIC
	Register isa.Register // valid when Type == REGISTER
}

// Debug renders the token the way error messages identify it by.
func (t Token) Debug() string {
	switch t.Type {
	case INTEGER:
		return fmt.Sprintf("Integer(%d)", t.Int)
	case IDENTIFIER:
		return fmt.Sprintf("Identifier(%q)", t.Text)
	case COMMENT:
		return fmt.Sprintf("Comment(%q)", t.Text)
	case MNEMONIC:
		return fmt.Sprintf("Mnemonic(%s)", t.Mnemonic)
	case REGISTER:
		return fmt.Sprintf("Register(%s)", t.Register)
	case EOF:
		return "EOF"
	default:
		return t.Type.String()
	}
}
