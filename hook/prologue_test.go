package hook

import "testing"

func TestClassify_HotPatch(t *testing.T) {
	head := []byte{0x8B, 0xFF, 0x55, 0x8B, 0xEC}
	shape, size, err := classify(head, decodeMode)
	if err != nil {
		t.Fatalf("classify() error = %v", err)
	}
	if shape != shapeHotPatch {
		t.Fatalf("shape = %v, want shapeHotPatch", shape)
	}
	if size != 2 {
		t.Fatalf("size = %d, want 2", size)
	}
}

func TestClassify_PushImm8(t *testing.T) {
	head := []byte{0x6A, 0x04, 0x68, 0x00, 0x10, 0x00, 0x00}
	shape, size, err := classify(head, decodeMode)
	if err != nil {
		t.Fatalf("classify() error = %v", err)
	}
	if shape != shapePushImm8 {
		t.Fatalf("shape = %v, want shapePushImm8", shape)
	}
	if size != 2 {
		t.Fatalf("size = %d, want 2", size)
	}
}

func TestClassify_Unknown(t *testing.T) {
	head := []byte{0x90, 0x90, 0x90, 0x90}
	shape, _, err := classify(head, decodeMode)
	if err != nil {
		t.Fatalf("classify() error = %v", err)
	}
	if shape != shapeUnknown {
		t.Fatalf("shape = %v, want shapeUnknown", shape)
	}
}

func TestClassify_ShortHead(t *testing.T) {
	shape, _, err := classify([]byte{}, decodeMode)
	if err != nil {
		t.Fatalf("classify() error = %v", err)
	}
	if shape != shapeUnknown {
		t.Fatalf("shape = %v, want shapeUnknown", shape)
	}
}
