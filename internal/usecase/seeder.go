package usecase

import (
	"context"
	"fmt"
	"time"

	"dorm-booking/internal/data/entity"
	"dorm-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogSeeder fills an empty catalog with the demo rooms. It is run from
// process startup or the seed command, never while serving a request.
type CatalogSeeder struct {
	rooms repository.RoomRepository
	cache RoomCache
	log   *zap.Logger
	now   func() time.Time
}

func NewCatalogSeeder(rooms repository.RoomRepository, cache RoomCache, log *zap.Logger) *CatalogSeeder {
	return &CatalogSeeder{
		rooms: rooms,
		cache: cache,
		log:   log.With(zap.String("service", "seeder")),
		now:   time.Now,
	}
}

// Seed inserts the demo rooms when the catalog is empty and returns how many
// were inserted. Calling it again is a no-op.
func (s *CatalogSeeder) Seed(ctx context.Context) (int, error) {
	total, err := s.rooms.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	if total > 0 {
		s.log.Debug("Catalog already populated, skipping seed", zap.Int64("rooms", total))
		return 0, nil
	}

	rooms := DemoRooms(s.now())
	inserted, err := s.rooms.CreateBatchIfEmpty(ctx, rooms)
	if err != nil {
		return 0, fmt.Errorf("failed to seed rooms: %w", err)
	}
	if !inserted {
		return 0, nil
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("Failed to invalidate room cache after seed", zap.Error(err))
	}

	s.log.Info("Catalog seeded", zap.Int("rooms", len(rooms)))
	return len(rooms), nil
}

type demoRoom struct {
	city        string
	street      string
	roomType    entity.RoomType
	kitchenette bool
	bathroom    bool
	price       int64
}

var demoRooms = []demoRoom{
	{"Warszawa", "Nowy Świat", entity.RoomTypeSingle, false, false, 500},
	{"Kraków", "Krupnicza", entity.RoomTypeSingle, false, false, 500},
	{"Poznań", "Stary Rynek", entity.RoomTypeSingle, false, true, 700},
	{"Warszawa", "Nowy Świat", entity.RoomTypeSingle, false, true, 700},
	{"Poznań", "Stary Rynek", entity.RoomTypeSingle, true, true, 700},
	{"Warszawa", "Nowy Świat", entity.RoomTypeDouble, false, false, 400},
	{"Kraków", "Krupnicza", entity.RoomTypeDouble, false, false, 400},
	{"Kraków", "Krupnicza", entity.RoomTypeSingle, false, false, 500},
	{"Poznań", "Stary Rynek", entity.RoomTypeDouble, true, false, 400},
	{"Warszawa", "Nowy Świat", entity.RoomTypeTriple, false, false, 300},
	{"Kraków", "Krupnicza", entity.RoomTypeSingle, false, true, 700},
	{"Kraków", "Krupnicza", entity.RoomTypeDouble, false, true, 400},
	{"Poznań", "Stary Rynek", entity.RoomTypeSingle, false, false, 500},
	{"Szczecin", "Krzywoustego", entity.RoomTypeSingle, false, false, 500},
	{"Szczecin", "Krzywoustego", entity.RoomTypeSingle, true, true, 700},
	{"Szczecin", "Krzywoustego", entity.RoomTypeSingle, true, true, 700},
	{"Szczecin", "Krzywoustego", entity.RoomTypeSingle, false, false, 500},
	{"Poznań", "Stary Rynek", entity.RoomTypeSingle, false, false, 500},
	{"Warszawa", "Nowy Świat", entity.RoomTypeDouble, true, true, 400},
	{"Kraków", "Krupnicza", entity.RoomTypeDouble, false, false, 400},
	{"Poznań", "Stary Rynek", entity.RoomTypeTriple, false, false, 300},
	{"Warszawa", "Nowy Świat", entity.RoomTypeTriple, false, false, 300},
	{"Kraków", "Krupnicza", entity.RoomTypeTriple, false, false, 300},
	{"Szczecin", "Krzywoustego", entity.RoomTypeTriple, false, false, 300},
}

// DemoRooms builds the demo catalog. Creation times step by one millisecond
// so listing order follows the table above.
func DemoRooms(now time.Time) []*entity.Room {
	rooms := make([]*entity.Room, len(demoRooms))
	for i, d := range demoRooms {
		rooms[i] = &entity.Room{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
			},
			City:               d.city,
			Street:             d.street,
			RoomType:           d.roomType,
			HasKitchenette:     d.kitchenette,
			HasPrivateBathroom: d.bathroom,
			Price:              decimal.NewFromInt(d.price),
			ImageName:          fmt.Sprintf("room-%d.jpg", i+1),
		}
	}
	return rooms
}
