package buildinfo

import "testing"

func TestString(t *testing.T) {
	Version, Commit, Date = "v1.2.3", "abc123", "2024-01-31"
	t.Cleanup(func() { Version, Commit, Date = "dev", "none", "unknown" })

	want := "attendpay v1.2.3 (commit=abc123, date=2024-01-31)"
	if got := String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
