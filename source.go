package crossroad

import (
	"math/rand/v2"
	"os"
	"sync"
	"time"
)

// Source supplies the randomness of a run
type Source interface {
	// Heading picks a valid heading uniformly
	Heading() Heading
	// Float64 returns a uniform value in [0, 1)
	Float64() float64
}

type randSource struct {
	mutex sync.Mutex
	rng   *rand.Rand
}

// NewSource returns a deterministic Source for seed
func NewSource(seed uint64) Source {
	return &randSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// DefaultSource returns a Source seeded from the clock and process ID
func DefaultSource() Source {
	return NewSource(uint64(time.Now().UnixNano()) ^ uint64(os.Getpid()))
}

func (s *randSource) Heading() Heading {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return headingTable[s.rng.IntN(len(headingTable))].heading
}

func (s *randSource) Float64() float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.rng.Float64()
}

// spawnDelay returns the number of time units to wait before the next vehicle.
// A heading that spawned within the last unit waits at least one unit more
func spawnDelay(src Source, maxGap int, recent bool) float64 {
	if !recent {
		return src.Float64() * float64(maxGap)
	}
	if maxGap <= 1 {
		return 1
	}
	return 1 + src.Float64()*float64(maxGap-1)
}
