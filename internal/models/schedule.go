package models

import "time"

// Weekdays is a bitmask of enabled weekdays, bit 0 = Sunday ... bit 6 = Saturday.
type Weekdays uint8

const AllWeekdays Weekdays = 0x7f

func WeekdaysOf(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w |= 1 << uint(d)
	}
	return w
}

func (w Weekdays) Contains(d time.Weekday) bool {
	return w&(1<<uint(d)) != 0
}

// ScheduleConfig is the process-wide encoding window configuration. It is a
// singleton row, mutated only through the schedule management endpoints.
type ScheduleConfig struct {
	Enabled              bool      `json:"enabled" db:"enabled"`
	DaysOfWeek           Weekdays  `json:"days_of_week" db:"days_of_week"`
	StartTime            string    `json:"start_time" db:"start_time" validate:"omitempty,len=5"`
	EndTime              string    `json:"end_time" db:"end_time" validate:"omitempty,len=5"`
	Timezone             string    `json:"timezone" db:"timezone" validate:"omitempty,lte=64"`
	UseOSRestHours       bool      `json:"use_os_rest_hours" db:"use_os_rest_hours"`
	ManualOverrideActive bool      `json:"manual_override_active" db:"manual_override_active"`
	MaxConcurrentJobs    int       `json:"max_concurrent_jobs" db:"max_concurrent_jobs" validate:"omitempty,gte=1"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

type ScheduleUpdateInput struct {
	Enabled           *bool     `json:"enabled"`
	DaysOfWeek        *Weekdays `json:"days_of_week" validate:"omitempty,lte=127"`
	StartTime         *string   `json:"start_time" validate:"omitempty,len=5"`
	EndTime           *string   `json:"end_time" validate:"omitempty,len=5"`
	Timezone          *string   `json:"timezone" validate:"omitempty,lte=64"`
	UseOSRestHours    *bool     `json:"use_os_rest_hours"`
	MaxConcurrentJobs *int      `json:"max_concurrent_jobs" validate:"omitempty,gte=1,lte=16"`
}

// ScheduleStatus is the schedule plus its computed admission verdict.
type ScheduleStatus struct {
	ScheduleConfig
	WithinSchedule bool `json:"within_schedule"`
	ManualOverride bool `json:"manual_override"`
}
