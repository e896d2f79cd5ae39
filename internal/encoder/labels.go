package encoder

// defineLabel records name at the current output offset. A second
// definition of the same name is rejected as a duplicate-label error.
func (s *State) defineLabel(name string) error {
	if _, exists := s.labels[name]; exists {
		return resolveErrorf("duplicate label: %s", name)
	}
	s.labels[name] = len(s.output)
	return nil
}

// emitJumpDisplacement writes the 4-byte rel32 field for a jump/call whose
// opcode bytes have already been emitted. If target is already known, the
// displacement is computed and written immediately; otherwise zeros are
// written and the patch site is recorded for the second pass.
func (s *State) emitJumpDisplacement(label string) {
	patchOffset := len(s.output)

	if target, ok := s.labels[label]; ok {
		diff := uint32(target) - uint32(patchOffset+4)
		s.emitLE32(diff)
		return
	}

	s.emitLE32(0)
	s.unresolvedJumps = append(s.unresolvedJumps, unresolvedJump{label: label, patchOffset: patchOffset})
}

// resolveLabels performs the second pass: every recorded patch site is
// overwritten with the little-endian encoding of
// (labels[name] - (patchOffset + 4)), computed as a wrapping u32
// subtraction. An unresolved name aborts the whole assembly.
func (s *State) resolveLabels() error {
	for _, j := range s.unresolvedJumps {
		target, ok := s.labels[j.label]
		if !ok {
			return resolveErrorf("undefined label: %s", j.label)
		}

		diff := uint32(target) - uint32(j.patchOffset+4)
		s.output[j.patchOffset+0] = byte(diff)
		s.output[j.patchOffset+1] = byte(diff >> 8)
		s.output[j.patchOffset+2] = byte(diff >> 16)
		s.output[j.patchOffset+3] = byte(diff >> 24)
	}
	return nil
}
