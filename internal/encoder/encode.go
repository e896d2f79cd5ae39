package encoder

import (
	"github.com/keurnel/x64asm/internal/ast"
	"github.com/keurnel/x64asm/internal/isa"
	"github.com/keurnel/x64asm/internal/trace"
)

// Generate walks instruction nodes in order, emitting bytes for operation
// nodes, recording label offsets, and performing two-phase jump resolution
// once the walk completes. sink may be nil — tracing is optional (the
// CLI's --trace flag is the only consumer that sets one).
func Generate(insts []ast.Instruction, sink *trace.Sink) ([]byte, error) {
	s := newState(sink)

	for _, inst := range insts {
		if err := s.encodeOne(inst); err != nil {
			return nil, err
		}
	}

	if s.trace != nil {
		s.trace.Trace(trace.PhaseResolve, "patching forward label references")
	}
	if err := s.resolveLabels(); err != nil {
		return nil, err
	}

	return s.output, nil
}

func (s *State) encodeOne(inst ast.Instruction) error {
	switch n := inst.(type) {
	case ast.PseudoOp:
		return nil // directives emit no code

	case ast.LabelDef:
		if s.trace != nil {
			s.trace.Trace(trace.PhaseEncode, "label "+n.Name+" at offset "+itoa(len(s.output)))
		}
		return s.defineLabel(n.Name)

	case ast.NullaryOp:
		before := len(s.output)
		if err := s.encodeNullary(n.Mnemonic); err != nil {
			return err
		}
		s.traceEncoded(n.Mnemonic, before)
		return nil

	case ast.UnaryOp:
		before := len(s.output)
		if err := s.encodeUnary(n.Mnemonic, n.Operand); err != nil {
			return err
		}
		s.traceEncoded(n.Mnemonic, before)
		return nil

	case ast.BinaryOp:
		before := len(s.output)
		if err := s.encodeBinary(n.Mnemonic, n.Dst, n.Src); err != nil {
			return err
		}
		s.traceEncoded(n.Mnemonic, before)
		return nil

	default:
		return encodeErrorf("unsupported instruction node")
	}
}

func (s *State) traceEncoded(m isa.Mnemonic, before int) {
	if s.trace == nil {
		return
	}
	s.trace.Trace(trace.PhaseEncode, "encoded "+m.String()+": "+itoa(len(s.output)-before)+" byte(s)")
}

// itoa is a minimal int-to-string without importing strconv, for trace
// messages only (no error path needs it).
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	buf := [20]byte{}
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// --- Nullary ---------------------------------------------------------------

func (s *State) encodeNullary(m isa.Mnemonic) error {
	switch m {
	case isa.Ret:
		s.emit(0xC3)
		return nil
	default:
		return encodeErrorf("unsupported operand combination for %s", m)
	}
}

// --- Unary -------------------------------------------------------------------

func (s *State) encodeUnary(m isa.Mnemonic, op ast.Operand) error {
	switch m {
	case isa.Push:
		return s.encodePush(op)
	case isa.Pop:
		return s.encodePop(op)
	case isa.IDiv:
		return s.encodeIDiv(op)
	case isa.Jmp:
		return s.encodeRel32(op, 0xE9)
	case isa.Je:
		return s.encodeRel32(op, 0x0F, 0x84)
	case isa.Call:
		return s.encodeRel32(op, 0xE8)
	case isa.Sete, isa.Setne, isa.Setl, isa.Setle, isa.Setg, isa.Setge:
		return s.encodeSet(m, op)
	default:
		return encodeErrorf("unsupported operand combination for %s", m)
	}
}

func (s *State) encodePush(op ast.Operand) error {
	switch o := op.(type) {
	case ast.Immediate:
		s.emit(0x6A)
		s.emit(byte(o.Value))
		return nil
	case ast.RegisterOperand:
		info := o.Register.Info()
		if info.Size != isa.QWord {
			return encodeErrorf("expected r64")
		}
		s.emitOpcodePlusRegREX(info)
		s.emit(0x50 + info.Number)
		return nil
	default:
		return encodeErrorf("unsupported operand combination for push")
	}
}

func (s *State) encodePop(op ast.Operand) error {
	reg, ok := op.(ast.RegisterOperand)
	if !ok {
		return encodeErrorf("unsupported operand combination for pop")
	}
	info := reg.Register.Info()
	if info.Size != isa.QWord {
		return encodeErrorf("expected r64")
	}
	s.emitOpcodePlusRegREX(info)
	s.emit(0x58 + info.Number)
	return nil
}

// emitOpcodePlusRegREX emits the REX prefix (if any) for an opcode+rd form
// (PUSH/POP r64). Unlike the other forms in this table that take a QWord
// register, PUSH/POP never set REX.W: opcode 50+rd/58+rd already defaults to a 64-bit operand
// in 64-bit mode (e.g. `push r8` encodes as `41 50`, no W bit).
func (s *State) emitOpcodePlusRegREX(reg isa.Info) {
	if reg.OnlyIn64Bit {
		s.emitREX(false, false, false, true)
	}
}

func (s *State) encodeIDiv(op ast.Operand) error {
	reg, ok := op.(ast.RegisterOperand)
	if !ok {
		return encodeErrorf("unsupported operand combination for idiv")
	}
	info := reg.Register.Info()
	if info.Size == isa.Byte {
		return encodeErrorf("expected r32 or r64")
	}
	s.emitSingleRegREX(info)
	s.emit(0xF7)
	s.emit(modrm(0b11, 7, info.Number))
	return nil
}

func (s *State) encodeSet(m isa.Mnemonic, op ast.Operand) error {
	reg, ok := op.(ast.RegisterOperand)
	if !ok {
		return encodeErrorf("unsupported operand combination for %s", m)
	}
	info := reg.Register.Info()
	if info.Size != isa.Byte {
		return encodeErrorf("expected r8")
	}
	s.emitSingleRegREX(info)
	s.emit(0x0F)
	s.emit(setOpcodeByte[m])
	s.emit(modrm(0b11, 0, info.Number))
	return nil
}

var setOpcodeByte = map[isa.Mnemonic]byte{
	isa.Sete: 0x94, isa.Setne: 0x95, isa.Setl: 0x9C,
	isa.Setle: 0x9E, isa.Setg: 0x9F, isa.Setge: 0x9D,
}

// encodeRel32 emits a jump/call's opcode bytes followed by its 4-byte
// displacement field. Only a Label operand is supported — these mnemonics
// have no register or immediate form in this table.
func (s *State) encodeRel32(op ast.Operand, opcode ...byte) error {
	label, ok := op.(ast.Label)
	if !ok {
		return encodeErrorf("unsupported operand combination for jump/call")
	}
	for _, b := range opcode {
		s.emit(b)
	}
	s.emitJumpDisplacement(label.Name)
	return nil
}

// emitSingleRegREX emits the REX prefix (if any) for the single-register
// forms where REX.W is meaningful (IDIV, SETcc): R = X = 0, B = reg's
// extension bit, W = 1 iff the register is QWord.
func (s *State) emitSingleRegREX(reg isa.Info) {
	w := reg.Size == isa.QWord
	b := reg.OnlyIn64Bit
	if w || b {
		s.emitREX(w, false, false, b)
	}
}

// --- Binary ------------------------------------------------------------------

type binaryForm struct {
	rrOpcode   byte // register,register opcode
	rrIsRM     bool // true: ModR/M reg=dst,rm=src (RM); false: reg=src,rm=dst (MR)
	riOpcode   byte // register,imm8 opcode (always 0x83 in this table)
	riExt      byte // /digit opcode extension for the register,imm8 form
	supportsRI bool
}

var binaryForms = map[isa.Mnemonic]binaryForm{
	isa.Add: {rrOpcode: 0x01, rrIsRM: false, riOpcode: 0x83, riExt: 0, supportsRI: true},
	isa.Sub: {rrOpcode: 0x29, rrIsRM: false, riOpcode: 0x83, riExt: 5, supportsRI: true},
	isa.Xor: {rrOpcode: 0x31, rrIsRM: false, riOpcode: 0x83, riExt: 6, supportsRI: true},
	isa.Mov: {rrOpcode: 0x8B, rrIsRM: true},
	isa.And: {rrOpcode: 0x23, rrIsRM: true, riOpcode: 0x83, riExt: 4, supportsRI: true},
	isa.Or:  {rrOpcode: 0x09, rrIsRM: false, riOpcode: 0x83, riExt: 1, supportsRI: true},
	isa.Cmp: {rrOpcode: 0x39, rrIsRM: false, riOpcode: 0x83, riExt: 7, supportsRI: true},
}

func (s *State) encodeBinary(m isa.Mnemonic, dst, src ast.Operand) error {
	if m == isa.IMul {
		return s.encodeIMul(dst, src)
	}

	form, ok := binaryForms[m]
	if !ok {
		return encodeErrorf("unsupported operand combination for %s", m)
	}

	dstReg, dstIsReg := dst.(ast.RegisterOperand)
	if !dstIsReg {
		return encodeErrorf("unsupported operand combination for %s", m)
	}

	switch srcVal := src.(type) {
	case ast.RegisterOperand:
		return s.encodeRegReg(dstReg.Register, srcVal.Register, form.rrOpcode, form.rrIsRM)

	case ast.Immediate:
		if m == isa.Mov {
			return s.encodeMovRegImm(dstReg.Register, srcVal.Value)
		}
		if !form.supportsRI {
			return encodeErrorf("unsupported operand combination for %s", m)
		}
		return s.encodeRegImm8(dstReg.Register, form.riExt, srcVal.Value)

	default:
		return encodeErrorf("unsupported operand combination for %s", m)
	}
}

// encodeRegReg emits a two-register form: opcode, then a ModR/M byte whose
// reg/rm assignment depends on whether this mnemonic's table entry is MR
// (reg=src, rm=dst) or RM (reg=dst, rm=src).
func (s *State) encodeRegReg(dst, src isa.Register, opcode byte, isRM bool) error {
	dstInfo, srcInfo := dst.Info(), src.Info()
	if dstInfo.Size != srcInfo.Size {
		return encodeErrorf("operand-size mismatch")
	}

	w := dstInfo.Size == isa.QWord || srcInfo.Size == isa.QWord
	r := srcInfo.OnlyIn64Bit
	b := dstInfo.OnlyIn64Bit
	if w || r || b {
		s.emitREX(w, r, false, b)
	}

	s.emit(opcode)
	if isRM {
		s.emit(modrm(0b11, dstInfo.Number, srcInfo.Number))
	} else {
		s.emit(modrm(0b11, srcInfo.Number, dstInfo.Number))
	}
	return nil
}

// encodeRegImm8 emits the `83 /digit ib` register,imm8 form shared by Add,
// Sub, Xor, And, Or and Cmp.
func (s *State) encodeRegImm8(dst isa.Register, ext byte, value uint32) error {
	info := dst.Info()
	s.emitSingleRegREX(info)
	s.emit(0x83)
	s.emit(modrm(0b11, ext, info.Number))
	s.emit(byte(value))
	return nil
}

// encodeMovRegImm emits `C7 /0 id`: MOV r, imm32.
func (s *State) encodeMovRegImm(dst isa.Register, value uint32) error {
	info := dst.Info()
	s.emitSingleRegREX(info)
	s.emit(0xC7)
	s.emit(modrm(0b11, 0, info.Number))
	s.emitLE32(value)
	return nil
}

// encodeIMul handles IMul separately: it only has a register,register RM
// form in this table. IMul r,imm has no defined encoding and is an error.
func (s *State) encodeIMul(dst, src ast.Operand) error {
	dstReg, dstIsReg := dst.(ast.RegisterOperand)
	srcReg, srcIsReg := src.(ast.RegisterOperand)
	if !dstIsReg || !srcIsReg {
		return encodeErrorf("unsupported operand combination for imul")
	}

	dstInfo, srcInfo := dstReg.Register.Info(), srcReg.Register.Info()
	if dstInfo.Size != srcInfo.Size {
		return encodeErrorf("operand-size mismatch")
	}

	w := dstInfo.Size == isa.QWord || srcInfo.Size == isa.QWord
	r := srcInfo.OnlyIn64Bit
	b := dstInfo.OnlyIn64Bit
	if w || r || b {
		s.emitREX(w, r, false, b)
	}

	s.emit(0x0F)
	s.emit(0xAF)
	s.emit(modrm(0b11, dstInfo.Number, srcInfo.Number))
	return nil
}
