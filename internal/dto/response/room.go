package response

import (
	"dorm-booking/internal/data/entity"
)

type RoomResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	City            string          `json:"city"`
	Street          string          `json:"street"`
	RoomType        entity.RoomType `json:"room_type"`
	Beds            int             `json:"beds"`
	MiniKitchenette string          `json:"mini_kitchenette"`
	BathroomType    string          `json:"bathroom_type"`
	Price           string          `json:"price"`
	ImageName       string          `json:"image_name"`
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:              room.ID.String(),
		Name:            room.String(),
		City:            room.City,
		Street:          room.Street,
		RoomType:        room.RoomType,
		Beds:            room.BedCount(),
		MiniKitchenette: room.KitchenetteLabel(),
		BathroomType:    room.BathroomType(),
		Price:           room.Price.StringFixed(2),
		ImageName:       room.ImageName,
	}
}

func RoomsToResponse(rooms []*entity.Room) []RoomResponse {
	result := make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		result[i] = RoomToResponse(room)
	}
	return result
}
