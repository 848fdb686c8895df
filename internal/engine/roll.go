package engine

import (
	"math/rand"
	"sync"
	"time"
)

// Roller draws uniform integers in [min, max], both bounds inclusive.
type Roller interface {
	Roll(min, max int) int
}

// RollerFunc adapts a plain function to Roller.
type RollerFunc func(min, max int) int

func (f RollerFunc) Roll(min, max int) int { return f(min, max) }

// randRoller is safe for concurrent use; one instance is shared by every
// battle served by the process.
type randRoller struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandRoller returns a Roller backed by math/rand with the given seed.
func NewRandRoller(seed int64) Roller {
	return &randRoller{r: rand.New(rand.NewSource(seed))}
}

// NewRNG returns a Roller seeded from the clock.
func NewRNG() Roller { return NewRandRoller(time.Now().UnixNano()) }

func (rr *randRoller) Roll(min, max int) int {
	if max <= min {
		return min
	}
	rr.mu.Lock()
	n := rr.r.Intn(max - min + 1)
	rr.mu.Unlock()
	return min + n
}
