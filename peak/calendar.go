package peak

import (
	"fmt"
	"sort"
	"time"
)

// peakMultiplier widens the reorder threshold during peak windows so low
// stock is flagged before the rush hits.
const peakMultiplier = 1.5

// Window is a half-open [StartHour, EndHour) interval in local 24h time.
type Window struct {
	StartHour int
	EndHour   int
}

// Calendar answers whether a given instant falls in a peak demand window and
// what the effective reorder threshold is at that instant. It is immutable
// after construction and safe for concurrent use.
type Calendar struct {
	windows []Window
}

// NewCalendar validates the window list and builds a Calendar.
// Windows must satisfy 0 <= start < end <= 24 and must not overlap.
func NewCalendar(windows []Window) (*Calendar, error) {
	sorted := make([]Window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartHour < sorted[j].StartHour })

	for i, w := range sorted {
		if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
			return nil, fmt.Errorf("invalid peak window [%d, %d)", w.StartHour, w.EndHour)
		}
		if i > 0 && w.StartHour < sorted[i-1].EndHour {
			return nil, fmt.Errorf("peak window [%d, %d) overlaps [%d, %d)",
				w.StartHour, w.EndHour, sorted[i-1].StartHour, sorted[i-1].EndHour)
		}
	}

	return &Calendar{windows: sorted}, nil
}

// IsPeakHour reports whether now's hour falls in any configured window.
func (c *Calendar) IsPeakHour(now time.Time) bool {
	hour := now.Hour()
	for _, w := range c.windows {
		if hour >= w.StartHour && hour < w.EndHour {
			return true
		}
	}
	return false
}

// EffectiveThreshold returns the stock level at or below which an item counts
// as low. During peak windows the base threshold is scaled by 1.5 and
// truncated toward zero, so it stays comparable with the integer-division
// critical boundary.
func (c *Calendar) EffectiveThreshold(baseThreshold int, now time.Time) int {
	if c.IsPeakHour(now) {
		return int(float64(baseThreshold) * peakMultiplier)
	}
	return baseThreshold
}

// Windows returns a copy of the configured windows.
func (c *Calendar) Windows() []Window {
	out := make([]Window, len(c.windows))
	copy(out, c.windows)
	return out
}
