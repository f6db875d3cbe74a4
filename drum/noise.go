package drum

import "math/rand"

// Noise supplies uniformly distributed excitation samples in [-1, 1].
// The voice engine pulls one value per layer per sample, so implementations
// must be cheap and must not allocate.
type Noise interface {
	Next() float64
}

// XorShiftNoise is the production noise source: a xorshift32 generator,
// statistically plain but fast enough for two pulls per audio sample.
type XorShiftNoise struct {
	state uint32
}

// NewXorShiftNoise returns a generator with a fixed nonzero seed state.
func NewXorShiftNoise() *XorShiftNoise {
	return &XorShiftNoise{state: 0x2545f491}
}

// Next returns the next pseudo-random value in [-1, 1].
func (n *XorShiftNoise) Next() float64 {
	x := n.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	n.state = x

	return float64(x)/2147483648.0 - 1
}

// SeededNoise is a deterministic noise source for tests and reproducible
// offline renders.
type SeededNoise struct {
	rng *rand.Rand
}

// NewSeededNoise returns a generator seeded for reproducibility.
func NewSeededNoise(seed int64) *SeededNoise {
	return &SeededNoise{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next value in [-1, 1].
func (n *SeededNoise) Next() float64 {
	return n.rng.Float64()*2 - 1
}
