package probe

import (
	"bytes"
	"testing"
)

func TestBuildReport(t *testing.T) {
	r := BuildReport(OSWindows)
	if len(r) != 3 {
		t.Fatalf("report must be exactly 3 bytes, got %d", len(r))
	}
	if !bytes.Equal(r, []byte{0x00, 0x2A, 2}) {
		t.Fatalf("unexpected report: %#v", r)
	}
}

func TestBuildReportFreshPerCall(t *testing.T) {
	a := BuildReport(OSLinux)
	b := BuildReport(OSLinux)
	a[2] = 0xFF
	if b[2] != OSLinux {
		t.Fatal("reports must not share backing storage")
	}
}

func TestParseOS(t *testing.T) {
	cases := map[string]byte{
		"linux":   OSLinux,
		"windows": OSWindows,
		"macos":   OSMacOS,
	}
	for name, want := range cases {
		got, err := ParseOS(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != want {
			t.Fatalf("%s: got %d, want %d", name, got, want)
		}
	}

	if _, err := ParseOS("beos"); err == nil {
		t.Fatal("expected error for unknown os")
	}
}
