package actions

import (
	"sync"
	"time"
)

// IDGenerator hands out timestamp-derived ids that never repeat within a
// process and never collide with an id already in the target sequence.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next returns the current unix second, bumped past the previous id and past
// any id in taken.
func (g *IDGenerator) Next(taken []int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().Unix()
	if id <= g.last {
		id = g.last + 1
	}

	used := make(map[int64]struct{}, len(taken))
	for _, t := range taken {
		used[t] = struct{}{}
	}
	for {
		if _, ok := used[id]; !ok {
			break
		}
		id++
	}

	g.last = id
	return id
}
