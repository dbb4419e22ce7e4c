package bandwidth

import "testing"

func TestCounter_Add(t *testing.T) {
	c := New()
	c.Add(100)
	c.Add(50)

	total, window, sent := c.Snapshot()
	if total != 150 || window != 150 || sent != 0 {
		t.Errorf("Snapshot() = (%d, %d, %d), want (150, 150, 0)", total, window, sent)
	}
}

func TestCounter_Add_IgnoresNonPositive(t *testing.T) {
	c := New()
	c.Add(0)
	c.Add(-5)

	total, window, _ := c.Snapshot()
	if total != 0 || window != 0 {
		t.Errorf("Snapshot() = (%d, %d), want (0, 0)", total, window)
	}
}

func TestCounter_AddSent_IsIndependent(t *testing.T) {
	c := New()
	c.Add(10)
	c.AddSent(20)

	total, window, sent := c.Snapshot()
	if total != 10 || window != 10 {
		t.Errorf("recv total/window = (%d, %d), want (10, 10)", total, window)
	}
	if sent != 20 {
		t.Errorf("sent = %d, want 20", sent)
	}
}

func TestCounter_ResetWindow(t *testing.T) {
	c := New()
	c.Add(100)
	c.ResetWindow()
	c.Add(25)

	total, window, _ := c.Snapshot()
	if total != 125 {
		t.Errorf("total = %d, want 125 (unaffected by window reset)", total)
	}
	if window != 25 {
		t.Errorf("window = %d, want 25", window)
	}
}
