package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(t *testing.T) Policy {
	t.Helper()
	start, err := ParseClockTime("08:00")
	require.NoError(t, err)
	end, err := ParseClockTime("09:30")
	require.NoError(t, err)
	return Policy{WindowStart: start, WindowEnd: end}
}

func at(hour, min, sec int) time.Time {
	return time.Date(2025, 3, 10, hour, min, sec, 0, time.UTC)
}

func TestClassifyTime(t *testing.T) {
	p := testPolicy(t)

	tests := []struct {
		name string
		now  time.Time
		want TimeState
	}{
		{"midnight", at(0, 0, 0), TimeBeforeWindow},
		{"one second before start", at(7, 59, 59), TimeBeforeWindow},
		{"exactly at start", at(8, 0, 0), TimeOnTime},
		{"middle of window", at(8, 30, 0), TimeOnTime},
		{"exactly at end", at(9, 30, 0), TimeOnTime},
		{"one second after end", at(9, 30, 1), TimeLate},
		{"late morning", at(10, 0, 0), TimeLate},
		{"end of day", at(23, 59, 59), TimeLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ClassifyTime(tt.now))
		})
	}
}

func TestClassifyTime_DateIrrelevant(t *testing.T) {
	p := testPolicy(t)

	d1 := time.Date(2025, 1, 1, 8, 15, 0, 0, time.UTC)
	d2 := time.Date(2031, 12, 31, 8, 15, 0, 0, time.UTC)
	assert.Equal(t, p.ClassifyTime(d1), p.ClassifyTime(d2))
}

func TestClassifyTime_MonotonicOverDay(t *testing.T) {
	p := testPolicy(t)

	// Scanning the whole day minute by minute must produce the three states
	// in order with no interleaving.
	var seen []TimeState
	for m := 0; m < 24*60; m++ {
		state := p.ClassifyTime(at(m/60, m%60, 0))
		if len(seen) == 0 || seen[len(seen)-1] != state {
			seen = append(seen, state)
		}
	}

	assert.Equal(t, []TimeState{TimeBeforeWindow, TimeOnTime, TimeLate}, seen)
}

func TestParseClockTime(t *testing.T) {
	ct, err := ParseClockTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, ct.Hour)
	assert.Equal(t, 30, ct.Minute)
	assert.Equal(t, "09:30", ct.String())

	_, err = ParseClockTime("25:00")
	assert.Error(t, err)

	_, err = ParseClockTime("0800")
	assert.Error(t, err)
}
