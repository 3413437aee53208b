package cachemgr

import "time"

// PressureLevel labels a memory pressure sample.
type PressureLevel string

// Pressure levels reported in statistics.
const (
	PressureLow      PressureLevel = "Low"
	PressureMedium   PressureLevel = "Medium"
	PressureHigh     PressureLevel = "High"
	PressureCritical PressureLevel = "Critical"
)

// LevelForPressure buckets a 0-100 pressure sample: below 40 is Low, below 70 is
// Medium, up to 90 is High and anything above is Critical.
func LevelForPressure(pressure float64) PressureLevel {
	switch {
	case pressure < 40:
		return PressureLow
	case pressure < 70:
		return PressureMedium
	case pressure <= 90:
		return PressureHigh
	default:
		return PressureCritical
	}
}

// Statistics is a point-in-time snapshot of a single module.
// It is never mutated after being returned.
type Statistics struct {
	TotalItems            int64          `json:"total_items"`
	HitCount              int64          `json:"hit_count"`
	MissCount             int64          `json:"miss_count"`
	HitRate               float64        `json:"hit_rate"`
	MemoryUsageBytes      int64          `json:"memory_usage_bytes"`
	LastCleanupTime       time.Time      `json:"last_cleanup_time"`
	AverageUsageFrequency float64        `json:"average_usage_frequency"`
	MemoryPressureLevel   PressureLevel  `json:"memory_pressure_level"`
	Extended              map[string]any `json:"extended,omitempty"`
}

// AverageItemSize derives the mean entry size from the snapshot, or 0 for an empty module.
func (s Statistics) AverageItemSize() int64 {
	if s.TotalItems <= 0 {
		return 0
	}
	return s.MemoryUsageBytes / s.TotalItems
}

// HasTraffic reports whether any lookups were recorded.
func (s Statistics) HasTraffic() bool {
	return s.HitCount+s.MissCount > 0
}

// ComputeHitRate returns hits/(hits+misses), or 0 when there was no traffic.
func ComputeHitRate(hits, misses int64) float64 {
	total := hits + misses
	if total <= 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// GlobalStatistics aggregates the statistics of every registered module.
type GlobalStatistics struct {
	Modules              map[string]Statistics `json:"modules"`
	ModuleErrors         map[string]error      `json:"-"`
	TotalCacheItems      int64                 `json:"total_cache_items"`
	TotalMemoryUsage     int64                 `json:"total_memory_usage"`
	TotalHits            int64                 `json:"total_hits"`
	TotalMisses          int64                 `json:"total_misses"`
	GlobalHitRate        float64               `json:"global_hit_rate"`
	ActiveModuleCount    int                   `json:"active_module_count"`
	SystemMemoryPressure float64               `json:"system_memory_pressure"`
	PressureLevel        PressureLevel         `json:"pressure_level"`
	LastUpdateTime       time.Time             `json:"last_update_time"`
}
