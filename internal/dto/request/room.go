package request

// CreateRoomRequest accepts any room_type; types other than single and double sleep three.
type CreateRoomRequest struct {
	City            string `json:"city" validate:"required,max=20"`
	Street          string `json:"street" validate:"omitempty,max=30"`
	RoomType        string `json:"room_type" validate:"required,max=10"`
	MiniKitchenette bool   `json:"mini_kitchenette"`
	PrivateBathroom bool   `json:"private_bathroom"`
	Price           string `json:"price" validate:"required"`
	ImageName       string `json:"image_name" validate:"omitempty,max=100"`
}

// SearchRoomsRequest mirrors the search form. Every field is optional and
// kept as raw text; interpretation happens in the catalog.
type SearchRoomsRequest struct {
	Keyword          string `json:"keyword"`
	ArrivalDeparture string `json:"arrival_departure"`
	City             string `json:"city"`
	RoomType         string `json:"room_type"`
	MiniKitchenette  string `json:"mini_kitchenette"`
	PrivateBathroom  string `json:"private_bathroom"`
	Price            string `json:"price"`
}

type AvailabilityRequest struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end" validate:"required,datetime=2006-01-02"`
}
