package rng

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source yields uniform floats in [0, 1). Game logic never touches a
// concrete generator directly so outcomes stay deterministic under test.
type Source interface {
	Float64() float64
}

const floatBits = 53

var floatMax = new(big.Int).Lsh(big.NewInt(1), floatBits)

// Crypto draws from crypto/rand.
type Crypto struct{}

func NewCrypto() Crypto { return Crypto{} }

func (Crypto) Float64() float64 {
	n, err := rand.Int(rand.Reader, floatMax)
	if err != nil {
		// Should never happen; degrade to a fixed midpoint
		return 0.5
	}
	return float64(n.Int64()) / float64(int64(1)<<floatBits)
}

// Seeded wraps math/rand for reproducible simulations.
type Seeded struct {
	r *mrand.Rand
}

func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: mrand.New(mrand.NewSource(seed))}
}

func (s *Seeded) Float64() float64 {
	return s.r.Float64()
}

// Sequence replays a scripted list of values, repeating the last one once
// exhausted. Used to pin exact draws in tests.
type Sequence struct {
	Values []float64
	pos    int
}

func NewSequence(values ...float64) *Sequence {
	return &Sequence{Values: values}
}

func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	if s.pos >= len(s.Values) {
		return s.Values[len(s.Values)-1]
	}
	v := s.Values[s.pos]
	s.pos++
	return v
}

// IntN maps one draw to [0, n).
func IntN(r Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Shuffle performs a Fisher-Yates shuffle driven by the source.
func Shuffle(r Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := IntN(r, i+1)
		swap(i, j)
	}
}
