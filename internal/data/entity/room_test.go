package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBedCount(t *testing.T) {
	tests := []struct {
		roomType RoomType
		beds     int
	}{
		{RoomTypeSingle, 1},
		{RoomTypeDouble, 2},
		{RoomTypeTriple, 3},
		{RoomType("quad"), 3},
		{RoomType(""), 3},
		{RoomType("Single"), 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.roomType), func(t *testing.T) {
			room := &Room{RoomType: tt.roomType}
			assert.Equal(t, tt.beds, room.BedCount())
		})
	}
}

func TestRoomLabels(t *testing.T) {
	room := &Room{HasKitchenette: true, HasPrivateBathroom: true}
	assert.Equal(t, "Yes", room.KitchenetteLabel())
	assert.Equal(t, "Private", room.BathroomType())

	room = &Room{}
	assert.Equal(t, "No", room.KitchenetteLabel())
	assert.Equal(t, "Shared", room.BathroomType())
}

func TestRoomString(t *testing.T) {
	id := uuid.New()
	room := &Room{BaseSimple: BaseSimple{ID: id}, City: "Kraków"}
	assert.Equal(t, "Kraków - Room "+id.String(), room.String())
}
