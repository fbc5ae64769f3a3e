package game

import (
	"testing"

	"casino_webapp/internal/rng"
)

func TestPickWeightedExactness(t *testing.T) {
	pool := []WeightedItem{
		{ID: "a", Weight: 10},
		{ID: "b", Weight: 20},
		{ID: "c", Weight: 70},
	}

	cases := []struct {
		draw float64
		want string
	}{
		{0.0, "a"},
		{0.0999, "a"},
		{0.1001, "b"},
		{0.9999, "c"},
	}

	for _, tc := range cases {
		got, err := PickWeighted(pool, 100, rng.NewSequence(tc.draw))
		if err != nil {
			t.Fatalf("PickWeighted(draw=%v): %v", tc.draw, err)
		}
		if got.ID != tc.want {
			t.Fatalf("PickWeighted(draw=%v) = %s; want %s", tc.draw, got.ID, tc.want)
		}
	}
}

func TestPickWeightedFallbackToLast(t *testing.T) {
	// Under-weighted pool: drift past the line lands on the last item
	pool := []WeightedItem{
		{ID: "a", Weight: 10},
		{ID: "b", Weight: 20},
	}
	got, err := PickWeighted(pool, 100, rng.NewSequence(0.99))
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "b" {
		t.Fatalf("fallback pick = %s; want b", got.ID)
	}
}

func TestPickWeightedEmptyPool(t *testing.T) {
	if _, err := PickWeighted(nil, 100, rng.NewSequence(0.5)); err != ErrEmptyPool {
		t.Fatalf("err = %v; want ErrEmptyPool", err)
	}
}

func TestValidatePool(t *testing.T) {
	good := []WeightedItem{{ID: "a", Weight: 40}, {ID: "b", Weight: 60}}
	if err := ValidatePool(good, 100); err != nil {
		t.Fatalf("valid pool rejected: %v", err)
	}

	bad := []WeightedItem{{ID: "a", Weight: 40}, {ID: "b", Weight: 50}}
	if err := ValidatePool(bad, 100); err == nil {
		t.Fatal("under-weighted pool accepted")
	}

	negative := []WeightedItem{{ID: "a", Weight: -1}, {ID: "b", Weight: 101}}
	if err := ValidatePool(negative, 100); err == nil {
		t.Fatal("negative weight accepted")
	}
}
