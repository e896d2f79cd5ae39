// Package encoder is the core of this assembler: it maps instruction nodes
// to precise machine-code byte sequences, including REX prefixes, ModR/M
// bytes, and two-phase label resolution. This assembler has no sections —
// all output accumulates into one flat byte stream (see DESIGN.md).
package encoder

import "github.com/keurnel/x64asm/internal/trace"

// unresolvedJump records a forward (or backward-but-not-yet-seen) label
// reference: the label name and the byte offset of the first byte of its
// 32-bit displacement field.
type unresolvedJump struct {
	label       string
	patchOffset int
}

// State is the running state of one Generate call: the accumulated output
// bytes, the label table, and the list of jump sites still waiting on a
// label. A State is created per Generate call and discarded once bytes are
// returned — it holds no state across calls.
type State struct {
	output          []byte
	labels          map[string]int
	unresolvedJumps []unresolvedJump

	trace *trace.Sink // optional; nil unless the caller asked for tracing
}

func newState(sink *trace.Sink) *State {
	return &State{
		labels: make(map[string]int),
		trace:  sink,
	}
}

func (s *State) emit(b byte) {
	s.output = append(s.output, b)
}

func (s *State) emitLE32(w uint32) {
	s.output = append(s.output, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
}

// emitREX appends a REX prefix: 0100 WRXB.
func (s *State) emitREX(w, r, x, b bool) {
	var rex byte = 0x40
	if w {
		rex |= 0x08
	}
	if r {
		rex |= 0x04
	}
	if x {
		rex |= 0x02
	}
	if b {
		rex |= 0x01
	}
	s.emit(rex)
}

// modrm packs a ModR/M byte from its three fields, each masked to its
// width.
func modrm(mod, reg, rm byte) byte {
	return (mod&0x3)<<6 | (reg&0x7)<<3 | (rm & 0x7)
}
