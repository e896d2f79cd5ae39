package isa

// Size is the operand width a register is fixed at.
type Size int

const (
	Byte Size = iota
	DWord
	QWord
)

func (s Size) String() string {
	switch s {
	case Byte:
		return "byte"
	case DWord:
		return "dword"
	case QWord:
		return "qword"
	default:
		return "<unknown-size>"
	}
}

// Register enumerates the general-purpose registers this assembler
// supports. It deliberately excludes 16-bit, high-byte, segment, control,
// debug, MMX and SIMD register families (see DESIGN.md).
type Register int

const (
	RAX Register = iota
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15

	EAX
	ECX
	EDX
	EBX
	ESP
	EBP
	ESI
	EDI
	R8D
	R9D
	R10D
	R11D
	R12D
	R13D
	R14D
	R15D

	AL
	CL
	DL
	BL
	R8B
	R9B
	R10B
	R11B
	R12B
	R13B
	R14B
	R15B
)

// Info carries a register's three intrinsic properties: the operand size
// it is fixed at, the 3-bit number used in ModR/M and opcode-plus-register
// forms, and whether it is only reachable in 64-bit mode (R8-R15 and their
// byte aliases), which drives the REX.R/REX.B extension bits.
type Info struct {
	Name        string
	Size        Size
	Number      byte
	OnlyIn64Bit bool
}

var registerInfo = map[Register]Info{
	RAX: {"rax", QWord, 0, false}, RCX: {"rcx", QWord, 1, false},
	RDX: {"rdx", QWord, 2, false}, RBX: {"rbx", QWord, 3, false},
	RSP: {"rsp", QWord, 4, false}, RBP: {"rbp", QWord, 5, false},
	RSI: {"rsi", QWord, 6, false}, RDI: {"rdi", QWord, 7, false},
	R8: {"r8", QWord, 0, true}, R9: {"r9", QWord, 1, true},
	R10: {"r10", QWord, 2, true}, R11: {"r11", QWord, 3, true},
	R12: {"r12", QWord, 4, true}, R13: {"r13", QWord, 5, true},
	R14: {"r14", QWord, 6, true}, R15: {"r15", QWord, 7, true},

	EAX: {"eax", DWord, 0, false}, ECX: {"ecx", DWord, 1, false},
	EDX: {"edx", DWord, 2, false}, EBX: {"ebx", DWord, 3, false},
	ESP: {"esp", DWord, 4, false}, EBP: {"ebp", DWord, 5, false},
	ESI: {"esi", DWord, 6, false}, EDI: {"edi", DWord, 7, false},
	R8D: {"r8d", DWord, 0, true}, R9D: {"r9d", DWord, 1, true},
	R10D: {"r10d", DWord, 2, true}, R11D: {"r11d", DWord, 3, true},
	R12D: {"r12d", DWord, 4, true}, R13D: {"r13d", DWord, 5, true},
	R14D: {"r14d", DWord, 6, true}, R15D: {"r15d", DWord, 7, true},

	AL: {"al", Byte, 0, false}, CL: {"cl", Byte, 1, false},
	DL: {"dl", Byte, 2, false}, BL: {"bl", Byte, 3, false},
	R8B: {"r8b", Byte, 0, true}, R9B: {"r9b", Byte, 1, true},
	R10B: {"r10b", Byte, 2, true}, R11B: {"r11b", Byte, 3, true},
	R12B: {"r12b", Byte, 4, true}, R13B: {"r13b", Byte, 5, true},
	R14B: {"r14b", Byte, 6, true}, R15B: {"r15b", Byte, 7, true},
}

// RegistersByName is the keyword table the lexer consults when classifying
// an identifier-shaped word.
var RegistersByName = func() map[string]Register {
	out := make(map[string]Register, len(registerInfo))
	for r, info := range registerInfo {
		out[info.Name] = r
	}
	return out
}()

// Info returns the intrinsic properties of r. Callers never construct Info
// values themselves — the table above is the single source of truth.
func (r Register) Info() Info {
	return registerInfo[r]
}

func (r Register) String() string {
	return registerInfo[r].Name
}
