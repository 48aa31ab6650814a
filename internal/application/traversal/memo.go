package traversal

import "lcatrace/internal/ports"

// MemoCache is an unsynchronized unit score cache owned by one traversal
type MemoCache struct {
	scores map[ports.ScoreKey]float64
}

// Ensure MemoCache implements ScoreCache
var _ ports.ScoreCache = (*MemoCache)(nil)

// NewMemoCache creates an empty cache
func NewMemoCache() *MemoCache {
	return &MemoCache{scores: make(map[ports.ScoreKey]float64)}
}

// Get returns a memoized score
func (c *MemoCache) Get(key ports.ScoreKey) (float64, bool) {
	v, ok := c.scores[key]
	return v, ok
}

// Add stores a score unless one is already present
func (c *MemoCache) Add(key ports.ScoreKey, value float64) bool {
	if _, ok := c.scores[key]; ok {
		return false
	}
	c.scores[key] = value
	return true
}

// Len returns the number of memoized scores
func (c *MemoCache) Len() int {
	return len(c.scores)
}
