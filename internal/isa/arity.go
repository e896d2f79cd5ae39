package isa

// Arity is the number of operands a mnemonic accepts.
type Arity int

const (
	Nullary Arity = 0
	Unary   Arity = 1
	Binary  Arity = 2
)

// arities maps each mnemonic to the single operand count its grammar
// accepts; a mismatch (e.g. `ret rax`) is a parse error. Every mnemonic in
// this assembler has exactly one valid shape; none is overloaded across
// arities.
var arities = map[Mnemonic]Arity{
	Ret:  Nullary,
	Push: Unary, Pop: Unary, IDiv: Unary, Jmp: Unary, Call: Unary,
	Sete: Unary, Setne: Unary, Setl: Unary, Setle: Unary, Setg: Unary, Setge: Unary,
	Je: Unary,
	Add: Binary, Sub: Binary, IMul: Binary, Xor: Binary, Mov: Binary,
	And: Binary, Or: Binary, Cmp: Binary,
}

// ArityOf returns the operand count the mnemonic requires.
func ArityOf(m Mnemonic) Arity {
	return arities[m]
}
