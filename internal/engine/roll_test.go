package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandRoller_StaysInBounds(t *testing.T) {
	r := NewRandRoller(7)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.Roll(5, 12)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 12)
		seen[v] = true
	}
	assert.Len(t, seen, 8, "every value in the range should appear")
}

func TestRandRoller_DegenerateRange(t *testing.T) {
	r := NewRandRoller(1)
	assert.Equal(t, 3, r.Roll(3, 3))
	assert.Equal(t, 3, r.Roll(3, 1))
}

func TestRandRoller_SameSeedSameSequence(t *testing.T) {
	a, b := NewRandRoller(99), NewRandRoller(99)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Roll(0, 100), b.Roll(0, 100))
	}
}
