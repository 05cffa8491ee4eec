package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func TestReservationOverlaps(t *testing.T) {
	existing := &Reservation{CheckInDate: day(10), CheckOutDate: day(15)}

	tests := []struct {
		name     string
		in, out  time.Time
		overlaps bool
	}{
		{"identical", day(10), day(15), true},
		{"shares check-out boundary", day(15), day(20), true},
		{"shares check-in boundary", day(5), day(10), true},
		{"inside", day(11), day(12), true},
		{"covers", day(1), day(30), true},
		{"entirely after", day(16), day(20), false},
		{"entirely before", day(1), day(9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, existing.Overlaps(tt.in, tt.out))
		})
	}
}

func TestReservationWithinWindow(t *testing.T) {
	existing := &Reservation{CheckInDate: day(10), CheckOutDate: day(15)}

	assert.True(t, existing.WithinWindow(day(10), day(15)))
	assert.True(t, existing.WithinWindow(day(1), day(31)))
	// partial overlap does not count as containment
	assert.False(t, existing.WithinWindow(day(12), day(20)))
	assert.False(t, existing.WithinWindow(day(1), day(12)))
	assert.False(t, existing.WithinWindow(day(11), day(14)))
}

func TestOpenOnAdmission(t *testing.T) {
	assert.True(t, OpenOnAdmission(day(12), day(12)))
	assert.True(t, OpenOnAdmission(day(12), day(11)))
	assert.False(t, OpenOnAdmission(day(12), day(13)))

	// clock time of today is ignored
	assert.True(t, OpenOnAdmission(day(12), day(12).Add(23*time.Hour)))
}

func TestIsCurrentlyActive(t *testing.T) {
	today := day(20).Add(9 * time.Hour)

	yesterday := &Reservation{CheckInDate: day(15), CheckOutDate: day(19), AdmittedOpen: true}
	tomorrow := &Reservation{CheckInDate: day(15), CheckOutDate: day(21)}
	endsToday := &Reservation{CheckInDate: day(18), CheckOutDate: day(20)}

	assert.False(t, yesterday.IsCurrentlyActive(today))
	assert.True(t, yesterday.AdmittedOpen, "stored flag is not re-evaluated")
	assert.True(t, tomorrow.IsCurrentlyActive(today))
	assert.True(t, endsToday.IsCurrentlyActive(today))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	assert.NoError(t, err)
	assert.Equal(t, day(10), d)

	_, err = ParseDate("10/01/2024")
	assert.Error(t, err)
}
