package request

// ReservationForm is the booking form submitted for a room.
type ReservationForm struct {
	CheckInDate    string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate   string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	NumberOfPeople int    `json:"number_of_people" validate:"required,gt=0"`
}

// AdminReservationRequest books a room on behalf of a user without the form stage.
type AdminReservationRequest struct {
	UserID         string `json:"user_id" validate:"required,uuid"`
	RoomID         string `json:"room_id" validate:"required,uuid"`
	CheckInDate    string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate   string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	NumberOfPeople int    `json:"number_of_people" validate:"required"`
}
