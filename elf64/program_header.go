package elf64

import (
	"bytes"
	"encoding/binary"
)

// ProgType values for p_type.
type ProgType uint32

const (
	PTNull ProgType = 0
	PTLoad ProgType = 1
)

// ProgFlag values for p_flags, OR-combined.
type ProgFlag uint32

const (
	PFExec  ProgFlag = 1
	PFWrite ProgFlag = 2
	PFRead  ProgFlag = 4
)

// ProgramHeader is one entry of the program-header table: a 56-byte
// ELF64 Phdr record. Field order follows the standard ELF64_Phdr layout.
type ProgramHeader struct {
	Type   ProgType
	Flags  ProgFlag
	Offset uint64
	VAddr  uint64
	PAddr  uint64
	FileSz uint64
	MemSz  uint64
	Align  uint64
}

func (p ProgramHeader) write(buf *bytes.Buffer) error {
	fields := []any{
		uint32(p.Type), uint32(p.Flags), p.Offset, p.VAddr, p.PAddr, p.FileSz, p.MemSz, p.Align,
	}
	for _, f := range fields {
		if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}

// loadBase is the virtual address Linux x86-64 static executables
// traditionally load at.
const loadBase = 0x400000

// WrapExecutable produces a minimal, runnable static ELF64 executable
// from a raw code blob: the file header plus one PT_LOAD segment covering
// the header and the code, with the entry point at the first instruction
// byte.
func WrapExecutable(code []byte) ([]byte, error) {
	phOff := uint64(headerSize)
	entry := uint64(loadBase) + phOff + progHeaderSize

	h := Header{
		OSABI:     0,
		Type:      TypeExec,
		Machine:   MachineX8664,
		Entry:     entry,
		PhOff:     phOff,
		ShOff:     0,
		PhEntSize: progHeaderSize,
		PhNum:     1,
		ShNum:     0,
		ShStrNdx:  0,
	}

	ph := ProgramHeader{
		Type:   PTLoad,
		Flags:  PFRead | PFExec,
		Offset: 0,
		VAddr:  loadBase,
		PAddr:  loadBase,
		FileSz: uint64(headerSize+progHeaderSize) + uint64(len(code)),
		MemSz:  uint64(headerSize+progHeaderSize) + uint64(len(code)),
		Align:  0x1000,
	}

	var buf bytes.Buffer
	if err := h.Write(&buf); err != nil {
		return nil, err
	}
	if err := ph.write(&buf); err != nil {
		return nil, err
	}
	buf.Write(code)

	return buf.Bytes(), nil
}
