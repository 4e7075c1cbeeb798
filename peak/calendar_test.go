package peak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceWindows() []Window {
	return []Window{{6, 9}, {11, 14}, {17, 21}}
}

func at(hour int) time.Time {
	return time.Date(2026, 3, 15, hour, 30, 0, 0, time.Local)
}

func TestCalendar_IsPeakHour(t *testing.T) {
	c, err := NewCalendar(referenceWindows())
	require.NoError(t, err)

	cases := []struct {
		hour int
		peak bool
	}{
		{0, false},
		{5, false},
		{6, true},  // start is inclusive
		{8, true},
		{9, false}, // end is exclusive
		{10, false},
		{11, true},
		{13, true},
		{14, false},
		{17, true},
		{20, true},
		{21, false},
		{23, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.peak, c.IsPeakHour(at(tc.hour)), "hour %d", tc.hour)
	}
}

func TestCalendar_EffectiveThreshold(t *testing.T) {
	c, err := NewCalendar(referenceWindows())
	require.NoError(t, err)

	// Off-peak the base threshold passes through unchanged.
	assert.Equal(t, 20, c.EffectiveThreshold(20, at(3)))

	// Peak scales by 1.5.
	assert.Equal(t, 30, c.EffectiveThreshold(20, at(7)))

	// Truncation toward zero: 15 * 1.5 = 22.5 -> 22.
	assert.Equal(t, 22, c.EffectiveThreshold(15, at(7)))

	assert.Equal(t, 0, c.EffectiveThreshold(0, at(7)))
}

func TestCalendar_PeakNeverLowersThreshold(t *testing.T) {
	c, err := NewCalendar(referenceWindows())
	require.NoError(t, err)

	for hour := 0; hour < 24; hour++ {
		for _, base := range []int{0, 1, 10, 15, 20, 60} {
			eff := c.EffectiveThreshold(base, at(hour))
			assert.GreaterOrEqual(t, eff, base, "hour %d base %d", hour, base)
		}
	}
}

func TestNewCalendar_Validation(t *testing.T) {
	cases := []struct {
		name    string
		windows []Window
	}{
		{"start after end", []Window{{9, 6}}},
		{"empty window", []Window{{6, 6}}},
		{"negative start", []Window{{-1, 6}}},
		{"end past midnight", []Window{{20, 25}}},
		{"overlapping", []Window{{6, 12}, {11, 14}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCalendar(tc.windows)
			assert.Error(t, err)
		})
	}
}

func TestNewCalendar_AcceptsAdjacentWindows(t *testing.T) {
	c, err := NewCalendar([]Window{{11, 14}, {6, 11}})
	require.NoError(t, err)
	assert.True(t, c.IsPeakHour(at(10)))
	assert.True(t, c.IsPeakHour(at(11)))
	assert.False(t, c.IsPeakHour(at(14)))
}

func TestCalendar_NoWindows(t *testing.T) {
	c, err := NewCalendar(nil)
	require.NoError(t, err)
	for hour := 0; hour < 24; hour++ {
		assert.False(t, c.IsPeakHour(at(hour)))
		assert.Equal(t, 20, c.EffectiveThreshold(20, at(hour)))
	}
}
