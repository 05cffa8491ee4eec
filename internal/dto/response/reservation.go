package response

import (
	"fmt"
	"time"

	"dorm-booking/internal/data/entity"
)

type ReservationResponse struct {
	ID             string    `json:"id"`
	RoomID         string    `json:"room_id"`
	UserID         string    `json:"user_id"`
	CheckInDate    string    `json:"check_in_date"`
	CheckOutDate   string    `json:"check_out_date"`
	NumberOfPeople int       `json:"number_of_people"`
	// AdmittedOpen is the status stored at admission, not the live one
	AdmittedOpen   bool      `json:"admitted_open"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserReservationsResponse groups a user's reservations into open and closed
type UserReservationsResponse struct {
	Open   []ReservationResponse `json:"open_reservations"`
	Closed []ReservationResponse `json:"closed_reservations"`
}

type FieldConstraint struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Label string `json:"label"`
}

// ReservationFormResponse backs the booking page of a room
type ReservationFormResponse struct {
	Room           RoomResponse             `json:"room"`
	NumberOfPeople FieldConstraint          `json:"number_of_people"`
	Reservations   UserReservationsResponse `json:"reservations"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:             r.ID.String(),
		RoomID:         r.RoomID.String(),
		UserID:         r.UserID.String(),
		CheckInDate:    r.CheckInDate.Format(entity.DateLayout),
		CheckOutDate:   r.CheckOutDate.Format(entity.DateLayout),
		NumberOfPeople: r.NumberOfPeople,
		AdmittedOpen:   r.AdmittedOpen,
		CreatedAt:      r.CreatedAt,
	}
}

func ReservationsToResponse(reservations []*entity.Reservation) []ReservationResponse {
	result := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		result[i] = ReservationToResponse(r)
	}
	return result
}

func NumberOfPeopleConstraint(room *entity.Room) FieldConstraint {
	beds := room.BedCount()
	return FieldConstraint{
		Min:   1,
		Max:   beds,
		Label: fmt.Sprintf("Number of People (max %d)", beds),
	}
}
