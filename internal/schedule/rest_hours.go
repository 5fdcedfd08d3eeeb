package schedule

// RestHoursProvider reports the OS-configured active-hours range in minutes of
// day. When active hours are available, the encoding window becomes their
// complement (the host's rest hours).
type RestHoursProvider interface {
	ActiveHours() (start, end int, ok bool)
}

type noRestHours struct{}

// NewNoRestHours is the default provider for hosts with no reported active
// hours; the evaluator falls back to the configured window.
func NewNoRestHours() RestHoursProvider {
	return noRestHours{}
}

func (noRestHours) ActiveHours() (int, int, bool) {
	return 0, 0, false
}

type staticRestHours struct {
	start int
	end   int
}

// NewStaticActiveHours reports a fixed active-hours range, for hosts that
// export their usage window through configuration.
func NewStaticActiveHours(startMinute, endMinute int) RestHoursProvider {
	return staticRestHours{start: startMinute, end: endMinute}
}

func (s staticRestHours) ActiveHours() (int, int, bool) {
	return s.start, s.end, true
}
