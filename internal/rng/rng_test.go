package rng

import "testing"

func TestCryptoRange(t *testing.T) {
	var src Crypto
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v; want [0,1)", v)
		}
	}
}

func TestSequenceReplay(t *testing.T) {
	s := NewSequence(0.1, 0.2, 0.3)
	want := []float64{0.1, 0.2, 0.3, 0.3, 0.3}
	for i, w := range want {
		if got := s.Float64(); got != w {
			t.Fatalf("draw %d = %v; want %v", i, got, w)
		}
	}
}

func TestIntNBounds(t *testing.T) {
	if got := IntN(NewSequence(0.999999), 10); got != 9 {
		t.Fatalf("IntN near 1.0 = %d; want 9", got)
	}
	if got := IntN(NewSequence(0.0), 10); got != 0 {
		t.Fatalf("IntN at 0.0 = %d; want 0", got)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	vals := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	Shuffle(NewSeeded(42), len(vals), func(i, j int) {
		vals[i], vals[j] = vals[j], vals[i]
	})

	seen := make(map[int]bool)
	for _, v := range vals {
		seen[v] = true
	}
	if len(seen) != 10 {
		t.Fatalf("shuffle lost elements: %v", vals)
	}
}
