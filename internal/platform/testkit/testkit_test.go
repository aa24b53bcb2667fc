package testkit

import "testing"

var zoneSeam = func() string { return "UTC" }

func TestSwapRestores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Serial(t)
		Swap(t, &zoneSeam, func() string { return "Europe/Berlin" })
		if zoneSeam() != "Europe/Berlin" {
			t.Fatalf("swap not applied")
		}
	})
	if zoneSeam() != "UTC" {
		t.Fatalf("swap not restored, got %q", zoneSeam())
	}
}

func TestAssertions(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
	MustContain(t, `{"ok":true}`, `"ok"`)
}
