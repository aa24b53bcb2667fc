package weights

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestClip(t *testing.T) {
	cases := []struct{ v, lo, hi, want float64 }{
		{5, 1, 10, 5},
		{-3, 1, 10, 1},
		{42, 1, 10, 10},
		{1, 1, 10, 1},
		{10, 1, 10, 10},
	}
	for _, c := range cases {
		if got := Clip(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clip(%v,%v,%v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestLinear(t *testing.T) {
	if got := Linear(1.5, 0.7, 0); len(got) != 1 || got[0] != 1.5 {
		t.Fatalf("Linear n=0 = %v", got)
	}
	if got := Linear(1.5, 0.7, 1); len(got) != 1 || got[0] != 1.5 {
		t.Fatalf("Linear n=1 = %v", got)
	}

	got := Linear(1.5, 0.7, 5)
	want := []float64{1.5, 1.3, 1.1, 0.9, 0.7}
	if len(got) != len(want) {
		t.Fatalf("Linear len = %d", len(got))
	}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("Linear[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	// descending recency weights, first is most recent
	for i := 1; i < len(got); i++ {
		if got[i] >= got[i-1] {
			t.Fatalf("weights not descending at %d: %v", i, got)
		}
	}
}

func TestWeightedAverage(t *testing.T) {
	if got := WeightedAverage(nil, nil); got != 0 {
		t.Fatalf("empty = %v", got)
	}
	if got := WeightedAverage([]float64{2, -1}, []float64{1, 1}); !approx(got, 0.5) {
		t.Fatalf("equal weights = %v", got)
	}
	if got := WeightedAverage([]float64{2, 0}, []float64{3, 1}); !approx(got, 1.5) {
		t.Fatalf("skewed = %v", got)
	}
	if got := WeightedAverage([]float64{2}, []float64{0}); got != 0 {
		t.Fatalf("zero weight total = %v", got)
	}
}

func TestMean(t *testing.T) {
	if Mean(nil) != 0 {
		t.Fatalf("Mean(nil) != 0")
	}
	if got := Mean([]float64{2, -1}); got != 0.5 {
		t.Fatalf("Mean = %v", got)
	}
}
