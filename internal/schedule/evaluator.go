package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
)

// Evaluator decides whether the encoding window is open at a given instant.
type Evaluator struct {
	restHours RestHoursProvider
	logger    logger.Logger
}

func NewEvaluator(restHours RestHoursProvider, log logger.Logger) *Evaluator {
	if restHours == nil {
		restHours = NewNoRestHours()
	}
	return &Evaluator{
		restHours: restHours,
		logger:    log,
	}
}

// WithinWindow evaluates the schedule at now. Manual override wins
// unconditionally; a disabled schedule never admits. The day-of-week check
// applies to the calendar day the window started on, so an overnight window
// that began Monday 22:00 is still "Monday's window" at Tuesday 02:00.
func (e *Evaluator) WithinWindow(cfg *models.ScheduleConfig, now time.Time) bool {
	if cfg.ManualOverrideActive {
		return true
	}
	if !cfg.Enabled {
		return false
	}

	if cfg.Timezone != "" {
		if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
			now = now.In(loc)
		} else {
			e.logger.Warnf("schedule: unknown timezone %q, using %s", cfg.Timezone, now.Location())
		}
	}

	start, end, err := e.effectiveWindow(cfg)
	if err != nil {
		e.logger.Errorf("schedule: invalid window: %v", err)
		return false
	}

	nowMin := now.Hour()*60 + now.Minute()

	// start == end is a degenerate full-day window.
	if start == end {
		return cfg.DaysOfWeek.Contains(now.Weekday())
	}

	if start < end {
		if nowMin >= start && nowMin < end {
			return cfg.DaysOfWeek.Contains(now.Weekday())
		}
		return false
	}

	// Overnight window: the side before midnight belongs to today, the side
	// after midnight belongs to yesterday's window.
	if nowMin >= start {
		return cfg.DaysOfWeek.Contains(now.Weekday())
	}
	if nowMin < end {
		yesterday := now.AddDate(0, 0, -1).Weekday()
		return cfg.DaysOfWeek.Contains(yesterday)
	}
	return false
}

// effectiveWindow resolves the active window in minutes of day. With OS rest
// hours enabled and reported, the window is the complement of active hours.
func (e *Evaluator) effectiveWindow(cfg *models.ScheduleConfig) (int, int, error) {
	if cfg.UseOSRestHours {
		if activeStart, activeEnd, ok := e.restHours.ActiveHours(); ok {
			return activeEnd, activeStart, nil
		}
	}
	start, err := parseClock(cfg.StartTime)
	if err != nil {
		return 0, 0, fmt.Errorf("start_time: %w", err)
	}
	end, err := parseClock(cfg.EndTime)
	if err != nil {
		return 0, 0, fmt.Errorf("end_time: %w", err)
	}
	return start, end, nil
}

// parseClock parses "HH:MM" into minutes of day.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}
