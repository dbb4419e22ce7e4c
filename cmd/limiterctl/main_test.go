package main

import "testing"

func TestParseArgs(t *testing.T) {
	a := parseArgs([]string{"-rules", "a.example=;b.example=1.2.3.4", "-addr=10.0.0.1:80"})
	if a.get("rules") != "a.example=;b.example=1.2.3.4" {
		t.Errorf("rules = %q", a.get("rules"))
	}
	if a.get("addr") != "10.0.0.1:80" {
		t.Errorf("addr = %q", a.get("addr"))
	}
}

func TestParseArgs_BooleanFlag(t *testing.T) {
	a := parseArgs([]string{"-verbose"})
	if a.get("verbose") != "true" {
		t.Errorf("verbose = %q, want %q", a.get("verbose"), "true")
	}
}

func TestSplitHostPort(t *testing.T) {
	addr, port, err := splitHostPort("10.20.30.40:8080")
	if err != nil {
		t.Fatalf("splitHostPort() error = %v", err)
	}
	want := [4]byte{10, 20, 30, 40}
	if addr != want {
		t.Errorf("addr = %v, want %v", addr, want)
	}
	if port != 8080 {
		t.Errorf("port = %d, want 8080", port)
	}
}

func TestSplitHostPort_Invalid(t *testing.T) {
	cases := []string{"not-an-address", "1.2.3.4", "1.2.3:80", "1.2.3.4:notaport", "999.1.1.1:80"}
	for _, c := range cases {
		if _, _, err := splitHostPort(c); err == nil {
			t.Errorf("splitHostPort(%q) expected error, got none", c)
		}
	}
}
