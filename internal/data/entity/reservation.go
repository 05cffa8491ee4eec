package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used on every date field.
const DateLayout = "2006-01-02"

// Reservation is a user's claim on a room for a date-inclusive window.
//
// AdmittedOpen is frozen at admission time and never re-evaluated; use
// IsCurrentlyActive for the live view.
type Reservation struct {
	BaseSimple
	UserID         uuid.UUID `db:"user_id"`
	RoomID         uuid.UUID `db:"room_id"`
	CheckInDate    time.Time `db:"check_in_date"`
	CheckOutDate   time.Time `db:"check_out_date"`
	NumberOfPeople int       `db:"number_of_people"`
	AdmittedOpen   bool      `db:"is_open"`
}

// DateOnly drops the clock part of t, keeping its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// OpenOnAdmission reports whether a stay ending on checkOut is still open on today.
func OpenOnAdmission(checkOut, today time.Time) bool {
	return !DateOnly(today).After(DateOnly(checkOut))
}

// IsCurrentlyActive is the live status: the stay has not ended before today.
func (r *Reservation) IsCurrentlyActive(today time.Time) bool {
	return !DateOnly(r.CheckOutDate).Before(DateOnly(today))
}

// Overlaps reports whether the reservation shares at least one calendar day with
// [checkIn, checkOut]. Touching boundaries count.
func (r *Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return !DateOnly(r.CheckInDate).After(DateOnly(checkOut)) &&
		!DateOnly(r.CheckOutDate).Before(DateOnly(checkIn))
}

// WithinWindow reports whether the whole reservation lies inside [start, end].
// This is the catalog availability rule, not an overlap test.
func (r *Reservation) WithinWindow(start, end time.Time) bool {
	return !DateOnly(r.CheckInDate).Before(DateOnly(start)) &&
		!DateOnly(r.CheckOutDate).After(DateOnly(end))
}

func (r *Reservation) String() string {
	return fmt.Sprintf("Reservation %s for room %s", r.ID, r.RoomID)
}
