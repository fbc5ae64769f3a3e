package game

import (
	"errors"
	"fmt"
	"math"

	"casino_webapp/internal/rng"
)

// WeightedItem is one entry of a weighted draw pool.
type WeightedItem struct {
	ID      string
	Weight  float64
	Payload interface{}
}

var ErrEmptyPool = errors.New("weighted pool is empty")

// PickWeighted draws one item proportionally to its weight. The pool is
// walked in caller order; if floating-point drift leaves the cursor past the
// line, the last item is returned. That fallback is deliberate: a
// mis-normalized pool shifts mass onto the last entry instead of failing a
// live round, which is why ValidatePool must run at load time.
func PickWeighted(pool []WeightedItem, totalWeight float64, r rng.Source) (WeightedItem, error) {
	if len(pool) == 0 {
		return WeightedItem{}, ErrEmptyPool
	}

	x := r.Float64() * totalWeight
	for _, item := range pool {
		if x < item.Weight {
			return item, nil
		}
		x -= item.Weight
	}
	return pool[len(pool)-1], nil
}

// ValidatePool checks that pool weights are positive and sum to the expected
// total. Meant to be called once at configuration load; a failure here is
// fatal, never a draw-time condition.
func ValidatePool(pool []WeightedItem, totalWeight float64) error {
	if len(pool) == 0 {
		return ErrEmptyPool
	}

	sum := 0.0
	for _, item := range pool {
		if item.Weight <= 0 {
			return fmt.Errorf("item %q has non-positive weight %v", item.ID, item.Weight)
		}
		sum += item.Weight
	}

	if math.Abs(sum-totalWeight) > 1e-9 {
		return fmt.Errorf("pool weights sum to %v, expected %v", sum, totalWeight)
	}
	return nil
}
