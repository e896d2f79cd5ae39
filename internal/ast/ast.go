// Package ast defines the instruction-node and operand-node sum types that
// flow from the parser into the encoder.
//
// One marker-method interface per sum type, with one Go type per case,
// rather than a single tagged struct — unrelated types can't accidentally
// satisfy the interface, and exhaustiveness is enforced by type switch at
// each use site rather than dynamic dispatch.
package ast

import "github.com/keurnel/x64asm/internal/isa"

// Operand is a sum type: Immediate, Register, Label or Memory.
type Operand interface {
	operandNode()
}

// Immediate is a decimal integer literal operand.
type Immediate struct {
	Value uint32
}

func (Immediate) operandNode() {}

// RegisterOperand names a register operand.
type RegisterOperand struct {
	Register isa.Register
}

func (RegisterOperand) operandNode() {}

// Label is an identifier used as a jump/call target.
type Label struct {
	Name string
}

func (Label) operandNode() {}

// Memory is a `[base (+|-) disp]` operand. Disp is nil when the bracket
// expression carries no displacement.
type Memory struct {
	Base isa.Register
	Disp *int32
}

func (Memory) operandNode() {}

// Instruction is a sum type: PseudoOp, LabelDef, NullaryOp, UnaryOp or
// BinaryOp.
type Instruction interface {
	instructionNode()
}

// PseudoOp is a `.name arg` directive. It emits no code.
type PseudoOp struct {
	Name string
	Arg  string
}

func (PseudoOp) instructionNode() {}

// LabelDef is a `name:` label declaration.
type LabelDef struct {
	Name string
}

func (LabelDef) instructionNode() {}

// NullaryOp is a mnemonic with no operands (e.g. `ret`).
type NullaryOp struct {
	Mnemonic isa.Mnemonic
}

func (NullaryOp) instructionNode() {}

// UnaryOp is a mnemonic with one operand (e.g. `push rax`).
type UnaryOp struct {
	Mnemonic isa.Mnemonic
	Operand  Operand
}

func (UnaryOp) instructionNode() {}

// BinaryOp is a mnemonic with two operands (e.g. `add rax, r9`).
type BinaryOp struct {
	Mnemonic isa.Mnemonic
	Dst      Operand
	Src      Operand
}

func (BinaryOp) instructionNode() {}
