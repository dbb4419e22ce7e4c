package hook

import "encoding/binary"

const (
	longJumpLen  = 5 // E9 rel32
	shortJumpLen = 2 // EB rel8
	patchWindow  = 7 // [target-5, target+2)
	longJumpOff  = 5 // distance from target back to where the long jump starts
)

// putDisplacement32 writes the little-endian 32-bit displacement to - from,
// where "from" is the address of the instruction immediately following the
// jump (longJump passes its own start plus longJumpLen).
func putDisplacement32(dst []byte, from, to uintptr) {
	rel := int32(int64(to) - int64(from))
	binary.LittleEndian.PutUint32(dst, uint32(rel))
}

// longJump encodes a 5-byte relative jump located at "from" that transfers
// control to "to".
func longJump(from, to uintptr) []byte {
	buf := make([]byte, longJumpLen)
	buf[0] = 0xE9
	putDisplacement32(buf[1:5], from+longJumpLen, to)
	return buf
}

// shortJumpBack5 is the canonical Windows hot-patch short jump: "jmp $-5",
// encoded EB F9, which lands exactly at the start of the 5-byte long jump
// written immediately before the function entry point. The "-5" in the
// design notes describes the distance from the jump instruction's own
// start (assembler "$" convention), not the raw relative-offset byte.
func shortJumpBack5() []byte {
	return []byte{0xEB, 0xF9}
}
