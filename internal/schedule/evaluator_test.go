package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrinkarr/shrinkarr/internal/config"
	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
)

func testLogger() logger.Logger {
	l := logger.NewApiLogger(&config.Config{
		Logger: config.Logger{Development: true, Encoding: "console", Level: "error"},
	})
	l.InitLogger()
	return l
}

// 2025-01-06 is a Monday.
func localTime(day, hour, minute int) time.Time {
	return time.Date(2025, 1, day, hour, minute, 0, 0, time.UTC)
}

func overnightMondayConfig() *models.ScheduleConfig {
	return &models.ScheduleConfig{
		Enabled:    true,
		DaysOfWeek: models.WeekdaysOf(time.Monday),
		StartTime:  "22:00",
		EndTime:    "06:00",
	}
}

func TestWithinWindow_OvernightWraparound(t *testing.T) {
	e := NewEvaluator(nil, testLogger())
	cfg := overnightMondayConfig()

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"monday 23:00 inside", localTime(6, 23, 0), true},
		{"tuesday 02:00 inside, window started monday", localTime(7, 2, 0), true},
		{"monday 12:00 outside", localTime(6, 12, 0), false},
		{"wednesday 01:00 outside, window started tuesday", localTime(8, 1, 0), false},
		{"monday 22:00 boundary inclusive", localTime(6, 22, 0), true},
		{"tuesday 06:00 boundary exclusive", localTime(7, 6, 0), false},
		{"tuesday 05:59 inside", localTime(7, 5, 59), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.WithinWindow(cfg, tc.now))
		})
	}
}

func TestWithinWindow_SameDayWindow(t *testing.T) {
	e := NewEvaluator(nil, testLogger())
	cfg := &models.ScheduleConfig{
		Enabled:    true,
		DaysOfWeek: models.WeekdaysOf(time.Monday),
		StartTime:  "09:00",
		EndTime:    "17:00",
	}

	assert.True(t, e.WithinWindow(cfg, localTime(6, 9, 0)))
	assert.True(t, e.WithinWindow(cfg, localTime(6, 16, 59)))
	assert.False(t, e.WithinWindow(cfg, localTime(6, 17, 0)))
	assert.False(t, e.WithinWindow(cfg, localTime(6, 8, 59)))
	// Same clock time on a Tuesday is outside the enabled days.
	assert.False(t, e.WithinWindow(cfg, localTime(7, 12, 0)))
}

func TestWithinWindow_ManualOverrideWins(t *testing.T) {
	e := NewEvaluator(nil, testLogger())
	cfg := overnightMondayConfig()
	cfg.Enabled = false
	cfg.ManualOverrideActive = true

	assert.True(t, e.WithinWindow(cfg, localTime(8, 12, 0)))
}

func TestWithinWindow_DisabledNeverAdmits(t *testing.T) {
	e := NewEvaluator(nil, testLogger())
	cfg := overnightMondayConfig()
	cfg.Enabled = false

	assert.False(t, e.WithinWindow(cfg, localTime(6, 23, 0)))
}

func TestWithinWindow_RestHoursComplement(t *testing.T) {
	// Active hours 08:00-20:00 make the rest window 20:00-08:00 overnight.
	e := NewEvaluator(NewStaticActiveHours(8*60, 20*60), testLogger())
	cfg := &models.ScheduleConfig{
		Enabled:        true,
		DaysOfWeek:     models.AllWeekdays,
		StartTime:      "00:00",
		EndTime:        "00:01",
		UseOSRestHours: true,
	}

	assert.True(t, e.WithinWindow(cfg, localTime(6, 21, 0)))
	assert.True(t, e.WithinWindow(cfg, localTime(6, 7, 0)))
	assert.False(t, e.WithinWindow(cfg, localTime(6, 12, 0)))
}

func TestWithinWindow_RestHoursUnavailableFallsBack(t *testing.T) {
	e := NewEvaluator(NewNoRestHours(), testLogger())
	cfg := overnightMondayConfig()
	cfg.UseOSRestHours = true

	assert.True(t, e.WithinWindow(cfg, localTime(6, 23, 0)))
	assert.False(t, e.WithinWindow(cfg, localTime(6, 12, 0)))
}

func TestWithinWindow_InvalidClockRejectsAdmission(t *testing.T) {
	e := NewEvaluator(nil, testLogger())
	cfg := overnightMondayConfig()
	cfg.StartTime = "25:99"

	assert.False(t, e.WithinWindow(cfg, localTime(6, 23, 0)))
}

func TestWithinWindow_FullDayWindow(t *testing.T) {
	e := NewEvaluator(nil, testLogger())
	cfg := &models.ScheduleConfig{
		Enabled:    true,
		DaysOfWeek: models.WeekdaysOf(time.Monday),
		StartTime:  "00:00",
		EndTime:    "00:00",
	}

	assert.True(t, e.WithinWindow(cfg, localTime(6, 3, 0)))
	assert.False(t, e.WithinWindow(cfg, localTime(7, 3, 0)))
}

func TestParseClock(t *testing.T) {
	min, err := parseClock("22:30")
	require.NoError(t, err)
	assert.Equal(t, 22*60+30, min)

	for _, bad := range []string{"", "22", "aa:bb", "24:00", "10:60"} {
		_, err := parseClock(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}
