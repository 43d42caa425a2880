package utils

import "testing"

func TestSaturate(t *testing.T) {
	if Saturate(0) != 0 {
		t.Error("zero raw score stays zero")
	}
	if Saturate(-1) != 0 {
		t.Error("negative raw score clamps to zero")
	}
	// Strictly increasing: higher raw always means higher normalized score.
	prev := 0.0
	for _, raw := range []float64{0.1, 0.5, 1, 2, 5, 100} {
		v := Saturate(raw)
		if v <= prev {
			t.Errorf("Saturate(%v) = %v, not greater than %v", raw, v, prev)
		}
		if v < 0 || v >= 1 {
			t.Errorf("Saturate(%v) = %v, out of [0,1)", raw, v)
		}
		prev = v
	}
}

func TestClamp01(t *testing.T) {
	if Clamp01(-0.5) != 0 || Clamp01(1.5) != 1 || Clamp01(0.3) != 0.3 {
		t.Error("Clamp01 bounds incorrect")
	}
}
