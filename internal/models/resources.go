package models

import "time"

// ResourceThresholds are the admission ceilings. A zero ceiling disables the axis.
type ResourceThresholds struct {
	CPUPct            float64   `json:"cpu_pct" db:"cpu_pct" validate:"omitempty,gte=0,lte=100"`
	MemoryPct         float64   `json:"memory_pct" db:"memory_pct" validate:"omitempty,gte=0,lte=100"`
	GPUPct            float64   `json:"gpu_pct" db:"gpu_pct" validate:"omitempty,gte=0,lte=100"`
	NiceLevel         int       `json:"nice_level" db:"nice_level" validate:"omitempty,gte=-20,lte=19"`
	ThrottlingEnabled bool      `json:"throttling_enabled" db:"throttling_enabled"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type GPUStat struct {
	Name   string  `json:"name"`
	GPUPct float64 `json:"gpu_pct"`
}

// ResourceSnapshot is a point-in-time host reading. It is never persisted; a
// failed axis is left at its zero value and logged by the sampler.
type ResourceSnapshot struct {
	CPUPct        float64   `json:"cpu_pct"`
	MemoryPct     float64   `json:"memory_pct"`
	MemoryUsedMB  int64     `json:"memory_used_mb"`
	MemoryTotalMB int64     `json:"memory_total_mb"`
	GPUs          []GPUStat `json:"gpus"`
	SampledAt     time.Time `json:"sampled_at"`
}
