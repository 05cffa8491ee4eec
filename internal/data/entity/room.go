package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeTriple RoomType = "triple"
)

// Room is a rentable dormitory unit. Its capacity is derived from RoomType and never stored.
type Room struct {
	BaseSimple
	City               string          `db:"city" json:"city"`
	Street             string          `db:"street" json:"street"`
	RoomType           RoomType        `db:"room_type" json:"room_type"`
	HasKitchenette     bool            `db:"mini_kitchenette" json:"mini_kitchenette"`
	HasPrivateBathroom bool            `db:"private_bathroom" json:"private_bathroom"`
	Price              decimal.Decimal `db:"price" json:"price"`
	ImageName          string          `db:"image_name" json:"image_name"`
}

// BedCount maps single to 1, double to 2 and every other type to 3.
func (r *Room) BedCount() int {
	return BedCount(r.RoomType)
}

func BedCount(t RoomType) int {
	switch t {
	case RoomTypeSingle:
		return 1
	case RoomTypeDouble:
		return 2
	default:
		return 3
	}
}

func (r *Room) BathroomType() string {
	if r.HasPrivateBathroom {
		return "Private"
	}
	return "Shared"
}

func (r *Room) KitchenetteLabel() string {
	if r.HasKitchenette {
		return "Yes"
	}
	return "No"
}

func (r *Room) String() string {
	return fmt.Sprintf("%s - Room %s", r.City, r.ID)
}
