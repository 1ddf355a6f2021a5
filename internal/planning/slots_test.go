package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotIndexBounds(t *testing.T) {
	assert.Equal(t, 0, SlotIndex(7, 0))
	assert.Equal(t, 47, SlotIndex(18, 45))
	assert.Equal(t, -1, SlotIndex(6, 0))
	assert.Equal(t, -1, SlotIndex(19, 0))
	assert.Equal(t, -1, SlotIndex(12, 10))
	assert.Equal(t, -1, SlotIndex(12, -15))
	assert.Equal(t, -1, SlotIndex(12, 60))
}

func TestSlotRoundTrip(t *testing.T) {
	for hour := GridStartHour; hour < GridEndHour; hour++ {
		for _, minutes := range []int{0, 15, 30, 45} {
			index := SlotIndex(hour, minutes)
			require.GreaterOrEqual(t, index, 0)
			require.Less(t, index, SlotCount)
			gotHour, gotMinutes := SlotToTime(index)
			assert.Equal(t, hour, gotHour)
			assert.Equal(t, minutes, gotMinutes)
		}
	}
}

func TestSlotToTimeOutOfRangeDefaults(t *testing.T) {
	for _, index := range []int{-1, SlotCount, 1000} {
		hour, minutes := SlotToTime(index)
		assert.Equal(t, GridStartHour, hour)
		assert.Equal(t, 0, minutes)
	}
}

func TestSnapToQuarterHour(t *testing.T) {
	cases := map[int]int{
		0:  0,
		7:  0,
		8:  15,
		15: 15,
		22: 15,
		23: 30,
		37: 30,
		38: 45,
		60: 60,
	}
	for input, want := range cases {
		assert.Equal(t, want, SnapToQuarterHour(input), "input %d", input)
	}
}

func TestDurationToSlots(t *testing.T) {
	assert.Equal(t, 1, DurationToSlots(15))
	assert.Equal(t, 4, DurationToSlots(60))
	assert.Equal(t, 32, DurationToSlots(480))

	// Invalid input falls back to the 30-minute default rather than erroring.
	assert.Equal(t, DefaultDurationSlots, DurationToSlots(0))
	assert.Equal(t, DefaultDurationSlots, DurationToSlots(25))
	assert.Equal(t, DefaultDurationSlots, DurationToSlots(-30))
	assert.Equal(t, DefaultDurationSlots, DurationToSlots(495))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 min", FormatDuration(45))
	assert.Equal(t, "1 heure", FormatDuration(60))
	assert.Equal(t, "2 heures", FormatDuration(120))
	assert.Equal(t, "1h 30min", FormatDuration(90))
	assert.Equal(t, "2h 15min", FormatDuration(135))
	assert.Equal(t, "30 min", FormatDuration(0))
}
