package protocol

import "testing"

func assertEqualString(t testing.TB, want, got string) {
	t.Helper()
	if want != got {
		t.Errorf("expected: %q, got: %q", want, got)
		t.FailNow()
	}
}

func assertEqualStrings(t testing.TB, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Errorf("expected %d elements %q, got %d elements %q", len(want), want, len(got), got)
		t.FailNow()
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("element %d: expected %q, got %q", i, want[i], got[i])
			t.FailNow()
		}
	}
}
