package schedule

import (
	"testing"

	"fieldbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	// Touching intervals do not overlap; half-open boundaries.
	assert.False(t, Overlaps(9, 11, 11, 13))
	assert.False(t, Overlaps(11, 13, 9, 11))

	assert.True(t, Overlaps(9, 12, 11, 13))
	assert.True(t, Overlaps(11, 13, 9, 12))
	assert.True(t, Overlaps(9, 15, 11, 12))
	assert.True(t, Overlaps(11, 12, 9, 15))
	assert.True(t, Overlaps(10, 12, 10, 12))
}

func rangeChosen(start, end int) models.Selection {
	return models.Selection{State: models.SelectionRangeChosen, StartHour: start, EndHour: end}
}

func TestValidateRange_PricesWholeRange(t *testing.T) {
	quote, err := ValidateRange(rangeChosen(9, 13), today, clockAt(8, 0), nil, 25)
	require.NoError(t, err)

	assert.Equal(t, 9, quote.StartHour)
	assert.Equal(t, 13, quote.EndHour)
	assert.Equal(t, 4, quote.Hours)
	assert.Equal(t, 100.0, quote.TotalPrice)
}

func TestValidateRange_RejectsPastStart(t *testing.T) {
	_, err := ValidateRange(rangeChosen(9, 11), today, clockAt(10, 30), nil, 25)

	rangeErr, ok := AsRangeError(err)
	require.True(t, ok)
	assert.Equal(t, ReasonPast, rangeErr.Reason)
}

func TestValidateRange_RejectsOverlapInsideRange(t *testing.T) {
	// Endpoints 13 and 15 are free but 14 is taken; the contiguous
	// range [13, 16) must be rejected as a whole.
	snapshot := []models.Booking{booking("user-b", 14, 15)}
	_, err := ValidateRange(rangeChosen(13, 16), today, clockAt(8, 0), snapshot, 25)

	rangeErr, ok := AsRangeError(err)
	require.True(t, ok)
	assert.Equal(t, ReasonOverlap, rangeErr.Reason)
}

func TestValidateRange_OwnBookingAlsoBlocks(t *testing.T) {
	snapshot := []models.Booking{booking("user-a", 10, 12)}
	_, err := ValidateRange(rangeChosen(11, 13), today, clockAt(8, 0), snapshot, 25)

	rangeErr, ok := AsRangeError(err)
	require.True(t, ok)
	assert.Equal(t, ReasonOverlap, rangeErr.Reason)
}

func TestValidateRange_TouchingBookingAllowed(t *testing.T) {
	snapshot := []models.Booking{booking("user-b", 9, 11)}
	quote, err := ValidateRange(rangeChosen(11, 13), today, clockAt(8, 0), snapshot, 30)

	require.NoError(t, err)
	assert.Equal(t, 60.0, quote.TotalPrice)
}

func TestValidateRange_CancelledBookingIgnored(t *testing.T) {
	cancelled := booking("user-b", 11, 12)
	cancelled.IsActive = false
	_, err := ValidateRange(rangeChosen(11, 13), today, clockAt(8, 0), []models.Booking{cancelled}, 30)
	assert.NoError(t, err)
}

func TestValidateRange_RequiresCommittedRange(t *testing.T) {
	_, err := ValidateRange(models.Selection{State: models.SelectionStartChosen, StartHour: 10}, today, clockAt(8, 0), nil, 25)
	require.Error(t, err)
	_, ok := AsRangeError(err)
	assert.False(t, ok)
}

func TestValidateRange_RejectsMalformedInterval(t *testing.T) {
	_, err := ValidateRange(rangeChosen(13, 13), today, clockAt(8, 0), nil, 25)
	require.Error(t, err)
	_, ok := AsRangeError(err)
	assert.False(t, ok)
}
