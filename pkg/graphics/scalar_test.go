package graphics

import "testing"

func TestRescale(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"midpoint", Rescale(5.0, 0, 10, 0, 100), 50},
		{"inverted target", Rescale(2.0, 0, 10, 10, 0), 8},
		{"extrapolate", Rescale(20.0, 0, 10, 0, 1), 2},
		{"degenerate source", Rescale(3.0, 1, 1, 7, 9), 7},
		{"subset inside", SubsetRescale(2.5, 0, 10, 100, 200), 125},
		{"subset above", SubsetRescale(15.0, 0, 10, 0, 1), 1},
		{"subset below", SubsetRescale(-5.0, 0, 10, 0, 1), 0},
		{"lerp", Lerp(2.0, 4, 0.25), 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %f, want %f", tt.got, tt.want)
			}
		})
	}

	if got := Clamp(12, 0, 10); got != 10 {
		t.Errorf("Clamp(12) = %d", got)
	}
	if got := Clamp(float32(-1), 0, 1); got != 0 {
		t.Errorf("Clamp(-1) = %f", got)
	}
}

func TestAngleConversion(t *testing.T) {
	if got := RadiansToDegrees(DegreesToRadians(90)); !near(got, 90) {
		t.Errorf("round trip = %f", got)
	}
	if got := DegreesToRadians(180); !near(got, 3.1415927) {
		t.Errorf("DegreesToRadians(180) = %f", got)
	}
}

func TestRandomDeterministic(t *testing.T) {
	a, b := NewRandom(7), NewRandom(7)
	for i := 0; i < 100; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d: %f != %f", i, x, y)
		}
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
		if x, y := a.Byte(), b.Byte(); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}

	c, d := NewRandom(1), NewRandom(2)
	same := true
	for i := 0; i < 4; i++ {
		if c.Float64() != d.Float64() {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced the same sequence")
	}

	a.Seed(99)
	b.Seed(99)
	if a.Float64() != b.Float64() {
		t.Error("reseeded generators diverged")
	}
}

func TestRandomRanges(t *testing.T) {
	r := NewRandom(42)
	seen := make(map[byte]bool)
	for i := 0; i < 10000; i++ {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 = %f outside [0,1)", f)
		}
		if n := r.IntRange(-3, 4); n < -3 || n >= 4 {
			t.Fatalf("IntRange = %d outside [-3,4)", n)
		}
		seen[r.Byte()] = true
	}
	if len(seen) != 256 {
		t.Errorf("saw %d distinct bytes, want 256", len(seen))
	}

	if got := r.IntRange(5, 5); got != 5 {
		t.Errorf("IntRange(5,5) = %d", got)
	}
	if got := r.IntRange(3, 1); got != 3 {
		t.Errorf("IntRange(3,1) = %d", got)
	}
	if got := r.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d", got)
	}
}

func TestDefaultRandomInjection(t *testing.T) {
	prev := SetDefaultRandom(NewRandom(11))
	defer SetDefaultRandom(prev)

	want := NewRandom(11)
	if got, w := RandomDouble(), want.Float64(); got != w {
		t.Errorf("RandomDouble = %f, want %f", got, w)
	}
	if got, w := RandomByte(), want.Byte(); got != w {
		t.Errorf("RandomByte = %d, want %d", got, w)
	}
	if got, w := RandomInt(10, 20), want.IntRange(10, 20); got != w {
		t.Errorf("RandomInt = %d, want %d", got, w)
	}
}
