package rng

import "testing"

func TestLehmerFirstDraw(t *testing.T) {
	r := New(1)
	if got := r.Next(); got != 16807 {
		t.Errorf("New(1).Next() = %d, want 16807", got)
	}
	if got := r.Next(); got != 282475249 {
		t.Errorf("second draw = %d, want 282475249", got)
	}
}

func TestLehmerSeedNormalization(t *testing.T) {
	tests := []struct {
		seed int64
		want int64
	}{
		{0, 2147483646},
		{1, 1},
		{2147483647, 2147483646},
		{2147483648, 1},
		{-5, 2147483641},
		{-2147483646, 2147483646},
	}

	for _, tt := range tests {
		if got := New(tt.seed).State(); got != tt.want {
			t.Errorf("New(%d).State() = %d, want %d", tt.seed, got, tt.want)
		}
	}
}

func TestLehmerNeverLocksAtZero(t *testing.T) {
	for _, seed := range []int64{0, -1, -2147483646, 2147483647, 4294967294} {
		r := New(seed)
		for i := 0; i < 1000; i++ {
			if r.Next() == 0 {
				t.Fatalf("seed %d reached the zero fixed point after %d draws", seed, i)
			}
		}
	}
}

func TestLehmerDeterminism(t *testing.T) {
	a := New(12345)
	b := New(12345)
	for i := 0; i < 500; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("draw %d differs: %d != %d", i, x, y)
		}
	}
}

func TestNextInRangeBounds(t *testing.T) {
	ranges := [][2]int{{0, 3}, {1, 26}, {4, 8}, {-5, 5}, {0, 100}, {2, 2}}
	for _, seed := range []int64{1, 42, 987654321, -77} {
		r := New(seed)
		for _, rg := range ranges {
			for i := 0; i < 10000; i++ {
				v := r.NextInRange(rg[0], rg[1])
				if v < rg[0] || v > rg[1] {
					t.Fatalf("seed %d: NextInRange(%d, %d) = %d", seed, rg[0], rg[1], v)
				}
			}
		}
	}
}

func TestNextInRangeSingleValueAdvances(t *testing.T) {
	r := New(1)
	if got := r.NextInRange(5, 5); got != 5 {
		t.Errorf("NextInRange(5, 5) = %d, want 5", got)
	}
	if got := r.State(); got != 16807 {
		t.Errorf("State() = %d after NextInRange(5, 5), want 16807", got)
	}
}

func TestNextInRangeInverted(t *testing.T) {
	tests := []struct {
		min, max int
	}{
		{9, 3},
		{4, 3}, // max == min-1 would divide by zero
	}
	for _, tt := range tests {
		r := New(7)
		before := r.State()
		if got := r.NextInRange(tt.min, tt.max); got != tt.min {
			t.Errorf("NextInRange(%d, %d) = %d, want %d", tt.min, tt.max, got, tt.min)
		}
		if r.State() != before {
			t.Errorf("NextInRange(%d, %d) advanced the stream", tt.min, tt.max)
		}
	}
}

func TestNextInRangeCoversRange(t *testing.T) {
	r := New(2024)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		seen[r.NextInRange(0, 3)] = true
	}
	for d := 0; d <= 3; d++ {
		if !seen[d] {
			t.Errorf("value %d never drawn", d)
		}
	}
}
