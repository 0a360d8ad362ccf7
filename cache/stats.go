package cache

// Stats is a point-in-time snapshot of the cache.
type Stats struct {
	TotalEntries   int    `json:"totalEntries"`
	ExpiredEntries int    `json:"expiredEntries"`
	ValidEntries   int    `json:"validEntries"`
	TotalHits      uint64 `json:"totalHits"`
	TotalMisses    uint64 `json:"totalMisses"`
	MaxSize        int    `json:"maxSize"`
}

// Utilization is TotalEntries / MaxSize, in [0, 1].
func (s Stats) Utilization() float64 {
	if s.MaxSize == 0 {
		return 0
	}
	return float64(s.TotalEntries) / float64(s.MaxSize)
}

// HitRate is hits / (hits + misses) since the last Clear.
func (s Stats) HitRate() float64 {
	lookups := s.TotalHits + s.TotalMisses
	if lookups == 0 {
		return 0
	}
	return float64(s.TotalHits) / float64(lookups)
}
