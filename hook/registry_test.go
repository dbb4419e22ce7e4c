package hook

import "testing"

func TestRegistry_InstallAll_FailsOnMissingSymbol(t *testing.T) {
	reg := NewRegistry()
	targets := []Target{
		{Name: "missing", Library: "this-library-does-not-exist-123.dll", Symbol: "Whatever", Detour: 0},
	}

	if err := reg.InstallAll(targets); err == nil {
		t.Fatal("expected InstallAll() to fail resolving a nonexistent library")
	}
	if reg.AllArmed() {
		t.Error("AllArmed() should be false after a failed InstallAll()")
	}
	if _, armed := reg.Resume("missing"); armed {
		t.Error("a target whose resolution failed should never report armed")
	}
}

func TestRegistry_UninstallAll_TolerantOfUnarmed(t *testing.T) {
	reg := NewRegistry()
	// Should not panic even with nothing installed.
	reg.UninstallAll()
	if reg.AllArmed() {
		t.Error("AllArmed() on an empty registry should be false")
	}
}

func TestRegistry_Resume_UnknownName(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Resume("nope"); ok {
		t.Error("Resume() on an unknown name should report not-armed")
	}
}

func TestRegistry_AllArmed_EmptyIsFalse(t *testing.T) {
	reg := NewRegistry()
	if reg.AllArmed() {
		t.Error("AllArmed() should be false when nothing has ever been registered")
	}
}
