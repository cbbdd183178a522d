// Package format renders raw video metadata as the display strings the
// trending grid shows: clock-style durations, relative publish times, and
// Korean-unit view counts.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// durationRe matches ISO-8601 time durations of the form PT#H#M#S with every
// component optional (PT4M5S, PT2H, PT0S, ...).
var durationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// Duration converts an ISO-8601 duration code into H:MM:SS (when hours > 0)
// or M:SS. Anything unparsable, including the empty string, comes back as
// "0:00" rather than an error.
func Duration(code string) string {
	m := durationRe.FindStringSubmatch(code)
	if m == nil {
		return "0:00"
	}

	hours := atoiOrZero(m[1])
	minutes := atoiOrZero(m[2])
	seconds := atoiOrZero(m[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Average month and year lengths, so "1개월 전" and "1년 전" flip over at the
// same points the calendar roughly does.
const (
	daysPerMonth = 30.44
	daysPerYear  = 365.25
)

// TimeAgo renders the elapsed time since t as the largest applicable bucket
// ("3일 전", "2시간 전", ...), or "방금 전" for anything under a minute.
func TimeAgo(t time.Time) string {
	return timeAgoAt(t, time.Now().UTC())
}

func timeAgoAt(t, now time.Time) string {
	diff := now.Sub(t)
	days := diff.Hours() / 24

	switch {
	case days/daysPerYear >= 1:
		return fmt.Sprintf("%d년 전", int(days/daysPerYear))
	case days/daysPerMonth >= 1:
		return fmt.Sprintf("%d개월 전", int(days/daysPerMonth))
	case days/7 >= 1:
		return fmt.Sprintf("%d주 전", int(days/7))
	case days >= 1:
		return fmt.Sprintf("%d일 전", int(days))
	case diff.Hours() >= 1:
		return fmt.Sprintf("%d시간 전", int(diff.Hours()))
	case diff.Minutes() >= 1:
		return fmt.Sprintf("%d분 전", int(diff.Minutes()))
	default:
		return "방금 전"
	}
}

// Count renders a non-negative count with Korean units: 만 (ten thousands)
// to one decimal from 10 000 up, 천 (thousands) to one decimal from 1 000 up,
// and the plain integer below that.
func Count(n int64) string {
	switch {
	case n >= 10000:
		return fmt.Sprintf("%.1f만", float64(n)/10000)
	case n >= 1000:
		return fmt.Sprintf("%.1f천", float64(n)/1000)
	default:
		return strconv.FormatInt(n, 10)
	}
}
