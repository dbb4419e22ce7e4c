package hook

import "golang.org/x/arch/x86/x86asm"

// prologueShape classifies the first bytes of a hot-patch candidate.
type prologueShape int

const (
	shapeUnknown prologueShape = iota
	// shapeHotPatch is the idiomatic two-byte "mov edi, edi" no-op Windows
	// system DLLs emit so a two-byte short jump can be dropped in later
	// without disturbing anything past the function's first instruction.
	shapeHotPatch
	// shapePushImm8 is a one-byte "push imm8" (6A xx), which also happens
	// to be exactly two bytes long.
	shapePushImm8
)

const (
	hotPatchByte0 = 0x8B
	hotPatchByte1 = 0xFF
	pushImm8Op    = 0x6A
)

// classify inspects the first instruction(s) of head and reports the
// recognized shape plus how many bytes of prologue that shape occupies.
// Unlike the teacher's disassemble loop, which accumulates instructions
// until it has enough bytes to relocate and must separately reject a
// branch landing inside that accumulated window, this module only ever
// recognizes exactly one fixed two-byte shape at a time: the hot-patch
// no-op (never decoded, matched on its literal bytes) or a single
// push-imm8 instruction. Both shapes are single, specific, non-branching
// opcodes, so there is no multi-instruction window left to scan for an
// embedded jump/call/ret — x86asm.Decode here exists only to confirm the
// push-imm8 byte actually starts a well-formed two-byte instruction, not
// to validate a relocation window.
func classify(head []byte, mode int) (prologueShape, int, error) {
	if len(head) >= 2 && head[0] == hotPatchByte0 && head[1] == hotPatchByte1 {
		return shapeHotPatch, 2, nil
	}
	if len(head) >= 1 && head[0] == pushImm8Op {
		inst, err := x86asm.Decode(head, mode)
		if err != nil || inst.Len != 2 {
			return shapeUnknown, 0, err
		}
		return shapePushImm8, 2, nil
	}
	return shapeUnknown, 0, nil
}
