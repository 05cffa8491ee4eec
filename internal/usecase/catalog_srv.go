package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"dorm-booking/internal/data/entity"
	"dorm-booking/internal/data/repository"
	"dorm-booking/internal/dto/request"
	"dorm-booking/internal/dto/response"
	"dorm-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CatalogService interface {
	ListAll(ctx context.Context) ([]*entity.Room, error)
	SampleRandom(ctx context.Context, n int) ([]*entity.Room, error)
	Search(ctx context.Context, criteria *request.SearchRoomsRequest) ([]*entity.Room, error)
	IsAvailable(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	ReservationForm(ctx context.Context, roomID uuid.UUID) (*response.ReservationFormResponse, error)

	// admin
	CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*entity.Room, error)
	DeleteRoom(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	repo  *repository.Repository
	cache RoomCache
	log   *zap.Logger
	now   func() time.Time
}

func NewCatalogService(repo *repository.Repository, cache RoomCache, log *zap.Logger) CatalogService {
	return &catalogService{
		repo:  repo,
		cache: cache,
		log:   log.With(zap.String("service", "catalog")),
		now:   time.Now,
	}
}

func (s *catalogService) ListAll(ctx context.Context) ([]*entity.Room, error) {
	rooms, hit, err := s.cache.GetRooms(ctx)
	if err != nil {
		s.log.Warn("Room cache read failed, falling back to store", zap.Error(err))
	}
	if hit {
		return rooms, nil
	}

	rooms, err = s.repo.Room.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	if err := s.cache.SetRooms(ctx, rooms); err != nil {
		s.log.Warn("Failed to cache room list", zap.Error(err))
	}

	return rooms, nil
}

func (s *catalogService) SampleRandom(ctx context.Context, n int) ([]*entity.Room, error) {
	if n < 0 {
		return nil, rejection(ErrInvalidInput, "n", "Sample size must not be negative")
	}

	rooms, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(rooms) < n {
		s.log.Warn("Not enough rooms to sample",
			zap.Int("requested", n),
			zap.Int("available", len(rooms)))
		return nil, fmt.Errorf("%w: requested %d, have %d", ErrInsufficientInventory, n, len(rooms))
	}

	// shuffle a copy so the cached slice keeps its order
	pool := make([]*entity.Room, len(rooms))
	copy(pool, rooms)
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	return pool[:n], nil
}

// Search applies the filters in form order. Empty fields are skipped, and
// unrecognized room type, kitchenette and bathroom values impose no filter.
func (s *catalogService) Search(ctx context.Context, criteria *request.SearchRoomsRequest) ([]*entity.Room, error) {
	rooms, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if keyword := strings.ToLower(criteria.Keyword); keyword != "" {
		rooms = filterRooms(rooms, func(r *entity.Room) bool {
			return strings.Contains(strings.ToLower(r.City), keyword)
		})
	}

	if criteria.ArrivalDeparture != "" {
		start, end, err := parseDateRange(criteria.ArrivalDeparture)
		if err != nil {
			s.log.Warn("Invalid date range in search", zap.String("value", criteria.ArrivalDeparture))
			return nil, err
		}

		reserved, err := s.repo.Reservation.RoomIDsWithinWindow(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to check availability: %w", err)
		}

		blocked := make(map[uuid.UUID]struct{}, len(reserved))
		for _, id := range reserved {
			blocked[id] = struct{}{}
		}
		rooms = filterRooms(rooms, func(r *entity.Room) bool {
			_, taken := blocked[r.ID]
			return !taken
		})
	}

	if criteria.City != "" {
		rooms = filterRooms(rooms, func(r *entity.Room) bool {
			return r.City == criteria.City
		})
	}

	if roomType, ok := searchRoomTypes[criteria.RoomType]; ok {
		rooms = filterRooms(rooms, func(r *entity.Room) bool {
			return r.RoomType == roomType
		})
	}

	if want, ok := yesNo(criteria.MiniKitchenette); ok {
		rooms = filterRooms(rooms, func(r *entity.Room) bool {
			return r.HasKitchenette == want
		})
	}

	if want, ok := yesNo(criteria.PrivateBathroom); ok {
		rooms = filterRooms(rooms, func(r *entity.Room) bool {
			return r.HasPrivateBathroom == want
		})
	}

	if criteria.Price != "" && criteria.Price != "Unlimited" {
		price, err := parsePrice(criteria.Price)
		if err != nil {
			s.log.Warn("Invalid price in search", zap.String("value", criteria.Price))
			return nil, err
		}
		rooms = filterRooms(rooms, func(r *entity.Room) bool {
			return r.Price.Equal(price)
		})
	}

	return rooms, nil
}

// IsAvailable uses the containment rule: the room is blocked only by a
// reservation lying entirely inside [start, end], whatever its open flag.
func (s *catalogService) IsAvailable(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	if _, err := s.GetRoom(ctx, roomID); err != nil {
		return false, err
	}

	blocked, err := s.repo.Reservation.ExistsWithinWindow(ctx, roomID, start, end)
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}

	return !blocked, nil
}

func (s *catalogService) GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *catalogService) ReservationForm(ctx context.Context, roomID uuid.UUID) (*response.ReservationFormResponse, error) {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return &response.ReservationFormResponse{
		Room:           response.RoomToResponse(room),
		NumberOfPeople: response.NumberOfPeopleConstraint(room),
	}, nil
}

func (s *catalogService) CreateRoom(ctx context.Context, req *request.CreateRoomRequest) (*entity.Room, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create room validation failed", zap.Any("errors", errs))
		return nil, &AdmissionError{Kind: ErrInvalidInput, Message: "Validation failed", Fields: errs}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return nil, rejection(ErrInvalidInput, "price", "Enter a number")
	}
	if price.IsNegative() {
		return nil, rejection(ErrInvalidInput, "price", "Ensure this value is greater than or equal to 0")
	}
	if !price.Equal(price.Round(2)) {
		return nil, rejection(ErrInvalidInput, "price", "Ensure that there are no more than 2 decimal places")
	}
	if price.Abs().GreaterThanOrEqual(maxPrice) {
		return nil, rejection(ErrInvalidInput, "price", "Ensure that there are no more than 10 digits in total")
	}

	room := &entity.Room{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		City:               strings.TrimSpace(req.City),
		Street:             strings.TrimSpace(req.Street),
		RoomType:           entity.RoomType(strings.ToLower(strings.TrimSpace(req.RoomType))),
		HasKitchenette:     req.MiniKitchenette,
		HasPrivateBathroom: req.PrivateBathroom,
		Price:              price,
		ImageName:          req.ImageName,
	}

	if err := s.repo.Room.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx)

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("city", room.City),
		zap.String("room_type", string(room.RoomType)))

	return room, nil
}

func (s *catalogService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Room.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoomGone) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *catalogService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("Failed to invalidate room cache", zap.Error(err))
	}
}

// NUMERIC(10,2)
var maxPrice = decimal.New(1, 8)

var searchRoomTypes = map[string]entity.RoomType{
	"Single": entity.RoomTypeSingle,
	"Double": entity.RoomTypeDouble,
	"Triple": entity.RoomTypeTriple,
}

func yesNo(value string) (bool, bool) {
	switch value {
	case "Yes":
		return true, true
	case "No":
		return false, true
	default:
		return false, false
	}
}

// parseDateRange reads "YYYY-MM-DD to YYYY-MM-DD".
func parseDateRange(value string) (time.Time, time.Time, error) {
	invalid := rejection(ErrInvalidDateRange, "arrival_departure",
		"Enter dates as YYYY-MM-DD to YYYY-MM-DD")

	parts := strings.Split(value, " to ")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, invalid
	}

	start, err := entity.ParseDate(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, time.Time{}, invalid
	}
	end, err := entity.ParseDate(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, time.Time{}, invalid
	}

	return start, end, nil
}

// parsePrice reads labels such as "500 PLN" or "1,200 PLN".
func parsePrice(value string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(value, " PLN", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	price, err := decimal.NewFromString(strings.TrimSpace(cleaned))
	if err != nil {
		return decimal.Decimal{}, rejection(ErrInvalidInput, "price", "Enter a valid price")
	}
	return price, nil
}

func filterRooms(rooms []*entity.Room, keep func(*entity.Room) bool) []*entity.Room {
	result := make([]*entity.Room, 0, len(rooms))
	for _, room := range rooms {
		if keep(room) {
			result = append(result, room)
		}
	}
	return result
}
