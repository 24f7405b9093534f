package cache

import (
	"encoding/json"
	"fmt"
)

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Size    int
	MaxSize int
}

// HitRate is hits/(hits+misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// MarshalJSON renders the hit rate as a percentage string, e.g. "83.3%".
func (s Stats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Hits    uint64 `json:"hits"`
		Misses  uint64 `json:"misses"`
		HitRate string `json:"hit_rate"`
		Size    int    `json:"size"`
		MaxSize int    `json:"max_size"`
	}{
		Hits:    s.Hits,
		Misses:  s.Misses,
		HitRate: fmt.Sprintf("%.1f%%", s.HitRate()*100),
		Size:    s.Size,
		MaxSize: s.MaxSize,
	})
}
