package encoder

import (
	"regexp"
	"strconv"
)

// ffmpeg reports transcode position on stderr as time=HH:MM:SS.cc.
var progressTimeRegex = regexp.MustCompile(`time=(\d+):(\d+):(\d+)(?:\.(\d+))?`)

// ParseProgressTime extracts the current transcode position in seconds from an
// ffmpeg stderr line.
func ParseProgressTime(line string) (float64, bool) {
	matches := progressTimeRegex.FindStringSubmatch(line)
	if matches == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(matches[1])
	mins, _ := strconv.Atoi(matches[2])
	secs, _ := strconv.Atoi(matches[3])
	position := float64(hours*3600 + mins*60 + secs)
	if matches[4] != "" {
		if frac, err := strconv.ParseFloat("0."+matches[4], 64); err == nil {
			position += frac
		}
	}
	return position, true
}

// ClampProgress bounds a computed percentage to [0, 100].
func ClampProgress(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
