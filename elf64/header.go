// Package elf64 writes the fixed 64-byte ELF64 file header, plus the
// minimal program-header wrapping needed to turn a raw code blob into a
// file a Linux loader will actually run.
package elf64

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Class and Data byte values for e_ident[4] and e_ident[5].
const (
	Class64      byte = 2
	DataLittle   byte = 1
	identVersion byte = 1
)

// Type values for e_type.
type Type uint16

const (
	TypeNone Type = 0
	TypeRel  Type = 1
	TypeExec Type = 2
	TypeDyn  Type = 3
	TypeCore Type = 4
)

// Machine values for e_machine.
type Machine uint16

const (
	MachineNone  Machine = 0
	MachineX8664 Machine = 62
)

const (
	headerSize     = 64
	progHeaderSize = 56
)

// Header holds the caller-set fields of the ELF64 file header, in order.
// e_version, e_flags, e_ehsize and e_shentsize are fixed and written by
// Write itself.
type Header struct {
	OSABI     byte
	Type      Type
	Machine   Machine
	Entry     uint64
	PhOff     uint64
	ShOff     uint64
	PhEntSize uint16
	PhNum     uint16
	ShNum     uint16
	ShStrNdx  uint16
}

// Write serializes h as the 64-byte ELF64 file header record. e_ident's
// first four bytes and class/data/version fields are fixed, the OS ABI
// byte comes from h.OSABI, and bytes 8-15 are zero padding. Every multi-byte field past e_ident is
// little-endian; the identification block itself is a byte array, not a
// multi-byte integer, so there is no endianness to apply to it.
func (h Header) Write(buf *bytes.Buffer) error {
	start := buf.Len()
	var ident [16]byte
	ident[0], ident[1], ident[2], ident[3] = 0x7F, 0x45, 0x4C, 0x46
	ident[4] = Class64
	ident[5] = DataLittle
	ident[6] = identVersion
	ident[7] = h.OSABI
	buf.Write(ident[:])

	if err := binary.Write(buf, binary.LittleEndian, uint16(h.Type)); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint16(h.Machine)); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(identVersion)); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, h.Entry); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, h.PhOff); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, h.ShOff); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(0)); err != nil { // e_flags
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint16(headerSize)); err != nil { // e_ehsize
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, h.PhEntSize); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, h.PhNum); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint16(headerSize)); err != nil { // e_shentsize
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, h.ShNum); err != nil {
		return err
	}
	if err := binary.Write(buf, binary.LittleEndian, h.ShStrNdx); err != nil {
		return err
	}

	if buf.Len()-start != headerSize {
		return fmt.Errorf("elf64: internal error, header length %d is not %d", buf.Len()-start, headerSize)
	}
	return nil
}
