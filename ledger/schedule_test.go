package ledger

import (
	"testing"

	"github.com/dcabrera/music_academy/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	mins, err := parseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, mins)

	for _, bad := range []string{"930", "24:00", "09:60", "ab:cd", ""} {
		_, err := parseClock(bad)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "input=%q", bad)
	}
}

func TestIntervalsOverlapHalfOpen(t *testing.T) {
	nine, ten, eleven := 9*60, 10*60, 11*60
	nineThirty, tenThirty := 9*60+30, 10*60+30

	// Touching endpoints do not conflict.
	assert.False(t, intervalsOverlap(nine, ten, ten, eleven))
	assert.False(t, intervalsOverlap(ten, eleven, nine, ten))

	assert.True(t, intervalsOverlap(nine, ten, nineThirty, tenThirty))
	assert.True(t, intervalsOverlap(nineThirty, tenThirty, nine, ten))
	assert.True(t, intervalsOverlap(nine, eleven, nineThirty, ten), "containment conflicts")
	assert.False(t, intervalsOverlap(nine, nineThirty, ten, eleven))
}

func TestSharedDayIsCaseInsensitive(t *testing.T) {
	day, ok := sharedDay([]string{"monday", "wednesday"}, []string{"Wednesday", "friday"})
	assert.True(t, ok)
	assert.Equal(t, "wednesday", day)

	_, ok = sharedDay([]string{"monday"}, []string{"tuesday", "thursday"})
	assert.False(t, ok)
}

func TestSeatAvailable(t *testing.T) {
	scheduleID := uuid.New()

	require.NoError(t, seatAvailable(scheduleID, models.ScheduleActive, 0, 1))
	require.NoError(t, seatAvailable(scheduleID, models.ScheduleActive, 7, 8))

	// The last seat is the boundary: enrolled == max is full.
	err := seatAvailable(scheduleID, models.ScheduleActive, 8, 8)
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, scheduleID, capErr.ScheduleID)
	assert.Contains(t, capErr.Error(), "max 8")

	for _, status := range []string{models.ScheduleInactive, models.ScheduleCompleted} {
		var stateErr *InvalidStateError
		require.ErrorAs(t, seatAvailable(scheduleID, status, 0, 8), &stateErr, "status=%s", status)
	}
}

func TestSeatAvailableAfterDropFreesSeat(t *testing.T) {
	// A drop lowers the enrolled count (dropped rows are excluded from
	// it), so a full single-seat schedule accepts the next student.
	scheduleID := uuid.New()

	var capErr *CapacityError
	require.ErrorAs(t, seatAvailable(scheduleID, models.ScheduleActive, 1, 1), &capErr)
	require.NoError(t, seatAvailable(scheduleID, models.ScheduleActive, 0, 1))
}

func TestValidateScheduleTimes(t *testing.T) {
	require.NoError(t, ValidateScheduleTimes("09:00", "10:30"))

	var verr *ValidationError
	require.ErrorAs(t, ValidateScheduleTimes("10:00", "10:00"), &verr)
	require.ErrorAs(t, ValidateScheduleTimes("11:00", "10:00"), &verr)
	require.ErrorAs(t, ValidateScheduleTimes("late", "10:00"), &verr)
}
