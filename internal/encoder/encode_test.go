package encoder

import (
	"bytes"
	"testing"

	"github.com/keurnel/x64asm/internal/ast"
	"github.com/keurnel/x64asm/internal/isa"
)

func reg(r isa.Register) ast.Operand { return ast.RegisterOperand{Register: r} }
func imm(v uint32) ast.Operand       { return ast.Immediate{Value: v} }
func label(n string) ast.Operand     { return ast.Label{Name: n} }

func hexBytes(t *testing.T, got []byte, want ...byte) {
	t.Helper()
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}

func TestGenerateNullaryAndUnary(t *testing.T) {
	cases := []struct {
		name string
		inst []ast.Instruction
		want []byte
	}{
		{"ret", []ast.Instruction{ast.NullaryOp{Mnemonic: isa.Ret}}, []byte{0xC3}},
		{"push imm", []ast.Instruction{ast.UnaryOp{Mnemonic: isa.Push, Operand: imm(1)}}, []byte{0x6A, 0x01}},
		{"push rax", []ast.Instruction{ast.UnaryOp{Mnemonic: isa.Push, Operand: reg(isa.RAX)}}, []byte{0x50}},
		{"push r8", []ast.Instruction{ast.UnaryOp{Mnemonic: isa.Push, Operand: reg(isa.R8)}}, []byte{0x41, 0x50}},
		{"idiv eax", []ast.Instruction{ast.UnaryOp{Mnemonic: isa.IDiv, Operand: reg(isa.EAX)}}, []byte{0xF7, 0xF8}},
		{"idiv rax", []ast.Instruction{ast.UnaryOp{Mnemonic: isa.IDiv, Operand: reg(isa.RAX)}}, []byte{0x48, 0xF7, 0xF8}},
		{"idiv r8", []ast.Instruction{ast.UnaryOp{Mnemonic: isa.IDiv, Operand: reg(isa.R8)}}, []byte{0x49, 0xF7, 0xF8}},
		{"sete al", []ast.Instruction{ast.UnaryOp{Mnemonic: isa.Sete, Operand: reg(isa.AL)}}, []byte{0x0F, 0x94, 0xC0}},
		{"sete r9b", []ast.Instruction{ast.UnaryOp{Mnemonic: isa.Sete, Operand: reg(isa.R9B)}}, []byte{0x41, 0x0F, 0x94, 0xC1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Generate(c.inst, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			hexBytes(t, got, c.want...)
		})
	}
}

func TestGenerateBinary(t *testing.T) {
	cases := []struct {
		name string
		m    isa.Mnemonic
		dst  ast.Operand
		src  ast.Operand
		want []byte
	}{
		{"add rax,r9", isa.Add, reg(isa.RAX), reg(isa.R9), []byte{0x4C, 0x01, 0xC8}},
		{"add r9,rax", isa.Add, reg(isa.R9), reg(isa.RAX), []byte{0x49, 0x01, 0xC1}},
		{"add r9,1", isa.Add, reg(isa.R9), imm(1), []byte{0x49, 0x83, 0xC1, 0x01}},
		{"imul r9,r9", isa.IMul, reg(isa.R9), reg(isa.R9), []byte{0x4D, 0x0F, 0xAF, 0xC9}},
		{"cmp rax,1", isa.Cmp, reg(isa.RAX), imm(1), []byte{0x48, 0x83, 0xF8, 0x01}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			inst := []ast.Instruction{ast.BinaryOp{Mnemonic: c.m, Dst: c.dst, Src: c.src}}
			got, err := Generate(inst, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			hexBytes(t, got, c.want...)
		})
	}
}

func TestGenerateJumpsAndLabels(t *testing.T) {
	t.Run("backward jmp", func(t *testing.T) {
		inst := []ast.Instruction{
			ast.LabelDef{Name: "loop"},
			ast.UnaryOp{Mnemonic: isa.Jmp, Operand: label("loop")},
		}
		got, err := Generate(inst, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		hexBytes(t, got, 0xE9, 0xFB, 0xFF, 0xFF, 0xFF)
	})

	t.Run("backward je", func(t *testing.T) {
		inst := []ast.Instruction{
			ast.LabelDef{Name: "loop"},
			ast.UnaryOp{Mnemonic: isa.Je, Operand: label("loop")},
		}
		got, err := Generate(inst, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		hexBytes(t, got, 0x0F, 0x84, 0xFA, 0xFF, 0xFF, 0xFF)
	})

	t.Run("backward call", func(t *testing.T) {
		inst := []ast.Instruction{
			ast.LabelDef{Name: "loop"},
			ast.UnaryOp{Mnemonic: isa.Call, Operand: label("loop")},
		}
		got, err := Generate(inst, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		hexBytes(t, got, 0xE8, 0xFB, 0xFF, 0xFF, 0xFF)
	})

	t.Run("forward jmp", func(t *testing.T) {
		inst := []ast.Instruction{
			ast.UnaryOp{Mnemonic: isa.Jmp, Operand: label("end")},
			ast.NullaryOp{Mnemonic: isa.Ret},
			ast.LabelDef{Name: "end"},
		}
		got, err := Generate(inst, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		hexBytes(t, got, 0xE9, 0x01, 0x00, 0x00, 0x00, 0xC3)
	})

	t.Run("undefined label", func(t *testing.T) {
		inst := []ast.Instruction{ast.UnaryOp{Mnemonic: isa.Jmp, Operand: label("nowhere")}}
		_, err := Generate(inst, nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if _, ok := err.(*ResolveError); !ok {
			t.Fatalf("expected *ResolveError, got %T: %v", err, err)
		}
	})

	t.Run("duplicate label", func(t *testing.T) {
		inst := []ast.Instruction{
			ast.LabelDef{Name: "a"},
			ast.LabelDef{Name: "a"},
		}
		_, err := Generate(inst, nil)
		if _, ok := err.(*ResolveError); !ok {
			t.Fatalf("expected *ResolveError, got %T: %v", err, err)
		}
	})
}

func TestGenerateEncodeErrors(t *testing.T) {
	cases := []struct {
		name string
		inst []ast.Instruction
	}{
		{"operand-size mismatch", []ast.Instruction{
			ast.BinaryOp{Mnemonic: isa.Add, Dst: reg(isa.EAX), Src: reg(isa.RAX)},
		}},
		{"setl on r64", []ast.Instruction{
			ast.UnaryOp{Mnemonic: isa.Setl, Operand: reg(isa.RAX)},
		}},
		{"push byte register", []ast.Instruction{
			ast.UnaryOp{Mnemonic: isa.Push, Operand: reg(isa.AL)},
		}},
		{"idiv byte register", []ast.Instruction{
			ast.UnaryOp{Mnemonic: isa.IDiv, Operand: reg(isa.AL)},
		}},
		{"imul with immediate", []ast.Instruction{
			ast.BinaryOp{Mnemonic: isa.IMul, Dst: reg(isa.RAX), Src: imm(2)},
		}},
		{"memory operand in binary op", []ast.Instruction{
			ast.BinaryOp{Mnemonic: isa.Mov, Dst: reg(isa.RAX), Src: ast.Memory{Base: isa.RBX}},
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Generate(c.inst, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if _, ok := err.(*EncodeError); !ok {
				t.Fatalf("expected *EncodeError, got %T: %v", err, err)
			}
		})
	}
}

func TestGenerateMovImmediate(t *testing.T) {
	inst := []ast.Instruction{
		ast.BinaryOp{Mnemonic: isa.Mov, Dst: reg(isa.RAX), Src: imm(1)},
	}
	got, err := Generate(inst, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hexBytes(t, got, 0x48, 0xC7, 0xC0, 0x01, 0x00, 0x00, 0x00)
}
