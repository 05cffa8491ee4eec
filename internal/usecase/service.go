package usecase

import (
	"context"
	"time"

	"dorm-booking/internal/data/entity"
	"dorm-booking/internal/data/repository"
	"dorm-booking/pkg/utils"

	"go.uber.org/zap"
)

// RoomCache holds the full room list between catalog changes.
type RoomCache interface {
	GetRooms(ctx context.Context) ([]*entity.Room, bool, error)
	SetRooms(ctx context.Context, rooms []*entity.Room) error
	Invalidate(ctx context.Context) error
}

// ReservationPublisher announces admitted reservations to other services.
type ReservationPublisher interface {
	PublishReservationAdmitted(ctx context.Context, reservation *entity.Reservation) error
}

type Service struct {
	Auth        AuthService
	Catalog     CatalogService
	Reservation ReservationService
	Seeder      *CatalogSeeder
}

// NewService wires the services. cache and publisher may be nil, in which case
// the catalog is always read from the store and no events are sent.
func NewService(
	repo *repository.Repository,
	config *utils.Config,
	cache RoomCache,
	publisher ReservationPublisher,
	log *zap.Logger,
) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}

	return &Service{
		Auth:        NewAuthService(repo, config, log),
		Catalog:     NewCatalogService(repo, cache, log),
		Reservation: NewReservationService(repo, publisher, log),
		Seeder:      NewCatalogSeeder(repo.Room, cache, log),
	}
}

type noopCache struct{}

func (noopCache) GetRooms(context.Context) ([]*entity.Room, bool, error) { return nil, false, nil }
func (noopCache) SetRooms(context.Context, []*entity.Room) error         { return nil }
func (noopCache) Invalidate(context.Context) error                       { return nil }

type noopPublisher struct{}

func (noopPublisher) PublishReservationAdmitted(context.Context, *entity.Reservation) error {
	return nil
}

// today is the calendar date of now, at UTC midnight
func today(now func() time.Time) time.Time {
	return entity.DateOnly(now())
}
