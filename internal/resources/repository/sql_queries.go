package repository

const (
	getThresholdsQuery = `SELECT cpu_pct, memory_pct, gpu_pct, nice_level, throttling_enabled, updated_at
					FROM resource_thresholds WHERE id = 1`

	updateThresholdsQuery = `UPDATE resource_thresholds SET
					cpu_pct = $1,
					memory_pct = $2,
					gpu_pct = $3,
					nice_level = $4,
					throttling_enabled = $5,
					updated_at = NOW()
					WHERE id = 1
					RETURNING cpu_pct, memory_pct, gpu_pct, nice_level, throttling_enabled, updated_at`
)
