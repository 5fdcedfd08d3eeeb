package queue

import "time"

// minProgressForETA guards the estimate against divide-by-near-zero early in a
// job, where a projection would be wildly wrong.
const minProgressForETA = 0.5

// EstimateRemaining projects time left from elapsed runtime and progress.
// It reports false until progress crosses the estimation threshold.
func EstimateRemaining(startedAt time.Time, progress float64, now time.Time) (time.Duration, bool) {
	if progress <= minProgressForETA {
		return 0, false
	}
	elapsed := now.Sub(startedAt)
	if elapsed <= 0 {
		return 0, false
	}
	total := time.Duration(float64(elapsed) / (progress / 100))
	remaining := total - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}
