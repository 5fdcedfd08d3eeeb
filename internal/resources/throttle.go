package resources

import "github.com/shrinkarr/shrinkarr/internal/models"

// IsThrottled reports whether any sampled axis exceeds its ceiling. Absent
// metrics (zero-value axes, no GPUs) never throttle; a zero ceiling disables
// the axis entirely.
func IsThrottled(snapshot *models.ResourceSnapshot, thresholds *models.ResourceThresholds) bool {
	if !thresholds.ThrottlingEnabled {
		return false
	}
	if thresholds.CPUPct > 0 && snapshot.CPUPct > thresholds.CPUPct {
		return true
	}
	if thresholds.MemoryPct > 0 && snapshot.MemoryPct > thresholds.MemoryPct {
		return true
	}
	if thresholds.GPUPct > 0 {
		for _, gpu := range snapshot.GPUs {
			if gpu.GPUPct > thresholds.GPUPct {
				return true
			}
		}
	}
	return false
}
