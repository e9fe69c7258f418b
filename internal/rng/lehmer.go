// Package rng provides the seeded Lehmer generator that drives every random
// decision in tinyrogue. Saved runs rebuild their floors by replaying a seed,
// so the stream must be identical across platforms and releases.
package rng

const (
	modulus    = 2147483647 // 2^31 - 1
	multiplier = 16807
)

// Lehmer is a multiplicative linear congruential generator (MINSTD).
type Lehmer struct {
	state int64
}

// New creates a generator from an arbitrary seed.
// The state is normalized into [1, modulus-1] because 0 is a fixed point.
func New(seed int64) *Lehmer {
	s := seed % modulus
	if s <= 0 {
		s += modulus - 1
	}
	if s <= 0 {
		s = modulus - 1
	}
	return &Lehmer{state: s}
}

// Next advances the generator and returns the new state.
func (l *Lehmer) Next() int64 {
	l.state = l.state * multiplier % modulus
	return l.state
}

// NextInRange returns a value in [min, max] inclusive. It always consumes
// exactly one draw, even when min == max. An inverted range returns min
// without drawing.
func (l *Lehmer) NextInRange(min, max int) int {
	if max < min {
		return min
	}
	n := int64(max - min + 1)
	i := l.Next() % n
	if i < 0 {
		i = -i
	}
	return min + int(i)
}

// State returns the current internal state, mostly useful for diagnostics.
func (l *Lehmer) State() int64 {
	return l.state
}
