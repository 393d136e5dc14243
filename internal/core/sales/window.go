package sales

import (
	"fmt"
	"strings"
	"time"
)

// Window is a named, bounded interval over which sales are aggregated.
type Window string

const (
	WindowDay     Window = "day"
	WindowWeek    Window = "week"
	WindowMonth   Window = "month"
	WindowYear    Window = "year"
	WindowAllTime Window = "all"
)

// DefaultEpoch is the fixed start of the AllTime window (store launch).
// AllTime never scans further back than this.
var DefaultEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

var windowAliases = map[string]Window{
	"day":      WindowDay,
	"daily":    WindowDay,
	"24h":      WindowDay,
	"week":     WindowWeek,
	"weekly":   WindowWeek,
	"7d":       WindowWeek,
	"month":    WindowMonth,
	"monthly":  WindowMonth,
	"year":     WindowYear,
	"yearly":   WindowYear,
	"all":      WindowAllTime,
	"all_time": WindowAllTime,
	"alltime":  WindowAllTime,
}

// Windows lists the supported windows in ascending length.
func Windows() []Window {
	return []Window{WindowDay, WindowWeek, WindowMonth, WindowYear, WindowAllTime}
}

// ParseWindow maps a user supplied period to a Window.
// An empty value defaults to AllTime; unknown values fail with ErrInvalidArgument.
func ParseWindow(s string) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return WindowAllTime, nil
	}
	w, ok := windowAliases[s]
	if !ok {
		return "", InvalidArgumentf("unknown period %q (must be one of %s)", s, windowList())
	}
	return w, nil
}

func windowList() string {
	names := make([]string, 0, len(Windows()))
	for _, w := range Windows() {
		names = append(names, string(w))
	}
	return strings.Join(names, ", ")
}

// Range resolves the window to an absolute [from, to] interval ending at now.
// Both bounds are inclusive.
func (w Window) Range(now time.Time, epoch time.Time) (from, to time.Time, err error) {
	to = now.UTC()
	switch w {
	case WindowDay:
		from = to.Add(-24 * time.Hour)
	case WindowWeek:
		from = to.AddDate(0, 0, -7)
	case WindowMonth:
		from = to.AddDate(0, -1, 0)
	case WindowYear:
		from = to.AddDate(-1, 0, 0)
	case WindowAllTime:
		if epoch.IsZero() {
			epoch = DefaultEpoch
		}
		from = epoch.UTC()
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown window %q", ErrInvalidArgument, string(w))
	}
	if from.After(to) {
		from = to
	}
	return from, to, nil
}

func (w Window) String() string {
	return string(w)
}
