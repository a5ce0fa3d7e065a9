// Package randdraw implements the lottery's uniform
// sampling-without-replacement behind domain.Sampler.
package randdraw

import (
	"math/rand"
	"sync"
	"time"

	"eventlottery/internal/domain"
)

type sampler struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a Sampler seeded with the given value, so draws are
// reproducible in tests.
func New(seed int64) domain.Sampler {
	return &sampler{r: rand.New(rand.NewSource(seed))}
}

// NewTimeSeeded returns a Sampler seeded from the clock, for production use.
func NewTimeSeeded() domain.Sampler {
	return New(time.Now().UnixNano())
}

// Pick selects k ids uniformly at random without replacement using a
// partial Fisher-Yates shuffle: only the first k positions are settled, and
// every k-subset is equally likely. The input slice is not modified.
// k is clamped to [0, len(ids)].
func (s *sampler) Pick(ids []string, k int) []string {
	if k <= 0 || len(ids) == 0 {
		return []string{}
	}
	if k > len(ids) {
		k = len(ids)
	}

	pool := make([]string, len(ids))
	copy(pool, ids)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < k; i++ {
		j := i + s.r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
