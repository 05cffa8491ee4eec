package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"dorm-booking/internal/data/entity"
	"dorm-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func date(value string) time.Time {
	t, err := entity.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}

// store is an in-memory stand-in for the four repositories.
type store struct {
	mu           sync.Mutex
	rooms        []*entity.Room
	reservations []*entity.Reservation
	users        []*entity.User
	sessions     []*entity.Session
	failFindAll  bool
}

func newStore() *store {
	return &store{}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		User:        &fakeUserRepo{s},
		Session:     &fakeSessionRepo{s},
		Room:        &fakeRoomRepo{s},
		Reservation: &fakeReservationRepo{s},
	}
}

func (s *store) addRoom(city string, roomType entity.RoomType, price int64) *entity.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := &entity.Room{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: fixedNow.Add(time.Duration(len(s.rooms)) * time.Second)},
		City:       city,
		Street:     "Main",
		RoomType:   roomType,
		Price:      decimal.NewFromInt(price),
		ImageName:  "room.jpg",
	}
	s.rooms = append(s.rooms, room)
	return room
}

func (s *store) addReservation(room *entity.Room, userID uuid.UUID, checkIn, checkOut string, open bool) *entity.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &entity.Reservation{
		BaseSimple:     entity.BaseSimple{ID: uuid.New(), CreatedAt: fixedNow},
		UserID:         userID,
		RoomID:         room.ID,
		CheckInDate:    date(checkIn),
		CheckOutDate:   date(checkOut),
		NumberOfPeople: 1,
		AdmittedOpen:   open,
	}
	s.reservations = append(s.reservations, r)
	return r
}

func (s *store) addUser(username string, role entity.UserRole) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: fixedNow, UpdatedAt: fixedNow},
		Username:     username,
		Email:        username + "@example.com",
		Role:         role,
		IsActive:     true,
	}
	s.users = append(s.users, user)
	return user
}

func (s *store) reservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reservations)
}

type fakeRoomRepo struct{ s *store }

func (f *fakeRoomRepo) Create(_ context.Context, room *entity.Room) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.rooms = append(f.s.rooms, room)
	return nil
}

func (f *fakeRoomRepo) CreateBatchIfEmpty(_ context.Context, rooms []*entity.Room) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if len(f.s.rooms) > 0 {
		return false, nil
	}
	f.s.rooms = append(f.s.rooms, rooms...)
	return true, nil
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, room := range f.s.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, nil
}

func (f *fakeRoomRepo) FindAll(_ context.Context) ([]*entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failFindAll {
		return nil, errors.New("connection refused")
	}
	rooms := make([]*entity.Room, len(f.s.rooms))
	copy(rooms, f.s.rooms)
	return rooms, nil
}

func (f *fakeRoomRepo) CountAll(_ context.Context) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return int64(len(f.s.rooms)), nil
}

func (f *fakeRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	rooms := f.s.rooms[:0]
	for _, room := range f.s.rooms {
		if room.ID != id {
			rooms = append(rooms, room)
		}
	}
	if len(rooms) == len(f.s.rooms) {
		return repository.ErrRoomGone
	}
	f.s.rooms = rooms

	reservations := f.s.reservations[:0]
	for _, r := range f.s.reservations {
		if r.RoomID != id {
			reservations = append(reservations, r)
		}
	}
	f.s.reservations = reservations
	return nil
}

type fakeReservationRepo struct{ s *store }

func (f *fakeReservationRepo) CreateIfRoomFree(_ context.Context, reservation *entity.Reservation) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	found := false
	for _, room := range f.s.rooms {
		if room.ID == reservation.RoomID {
			found = true
		}
	}
	if !found {
		return false, repository.ErrRoomGone
	}

	for _, existing := range f.s.reservations {
		if existing.RoomID == reservation.RoomID && existing.AdmittedOpen &&
			existing.Overlaps(reservation.CheckInDate, reservation.CheckOutDate) {
			return false, nil
		}
	}

	f.s.reservations = append(f.s.reservations, reservation)
	return true, nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return f.first(func(r *entity.Reservation) bool { return r.ID == id }), nil
}

func (f *fakeReservationRepo) FindByRoomID(_ context.Context, roomID uuid.UUID) ([]*entity.Reservation, error) {
	return f.filter(func(r *entity.Reservation) bool { return r.RoomID == roomID }), nil
}

func (f *fakeReservationRepo) FindActiveByUser(_ context.Context, userID uuid.UUID, today time.Time) ([]*entity.Reservation, error) {
	return f.filter(func(r *entity.Reservation) bool {
		return r.UserID == userID && r.IsCurrentlyActive(today)
	}), nil
}

func (f *fakeReservationRepo) FindEndedByUser(_ context.Context, userID uuid.UUID, today time.Time) ([]*entity.Reservation, error) {
	return f.filter(func(r *entity.Reservation) bool {
		return r.UserID == userID && !r.IsCurrentlyActive(today)
	}), nil
}

func (f *fakeReservationRepo) FindByUserAndAdmittedOpen(_ context.Context, userID uuid.UUID, open bool) ([]*entity.Reservation, error) {
	return f.filter(func(r *entity.Reservation) bool {
		return r.UserID == userID && r.AdmittedOpen == open
	}), nil
}

func (f *fakeReservationRepo) ExistsWithinWindow(_ context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	return f.first(func(r *entity.Reservation) bool {
		return r.RoomID == roomID && r.WithinWindow(start, end)
	}) != nil, nil
}

func (f *fakeReservationRepo) RoomIDsWithinWindow(_ context.Context, start, end time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, r := range f.filter(func(r *entity.Reservation) bool { return r.WithinWindow(start, end) }) {
		ids = append(ids, r.RoomID)
	}
	return ids, nil
}

func (f *fakeReservationRepo) first(match func(*entity.Reservation) bool) *entity.Reservation {
	if found := f.filter(match); len(found) > 0 {
		return found[0]
	}
	return nil
}

func (f *fakeReservationRepo) filter(match func(*entity.Reservation) bool) []*entity.Reservation {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	var result []*entity.Reservation
	for _, r := range f.s.reservations {
		if match(r) {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CheckInDate.Before(result[j].CheckInDate)
	})
	return result
}

type fakeUserRepo struct{ s *store }

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.users = append(f.s.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Email == email }), nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (f *fakeUserRepo) find(match func(*entity.User) bool) *entity.User {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if match(u) {
			return u
		}
	}
	return nil
}

type fakeSessionRepo struct{ s *store }

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.sessions = append(f.s.sessions, session)
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, session := range f.s.sessions {
		if session.Token.String() == token && session.RevokedAt == nil {
			return session, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, session := range f.s.sessions {
		if session.Token.String() == token && session.RevokedAt == nil {
			now := fixedNow
			session.RevokedAt = &now
			return nil
		}
	}
	return errors.New("session not found or already revoked")
}

// memoryCache records cache traffic.
type memoryCache struct {
	rooms       []*entity.Room
	hit         bool
	sets        int
	invalidated int
	getErr      error
}

func (c *memoryCache) GetRooms(context.Context) ([]*entity.Room, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.rooms, c.hit, nil
}

func (c *memoryCache) SetRooms(_ context.Context, rooms []*entity.Room) error {
	c.rooms, c.hit = rooms, true
	c.sets++
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.rooms, c.hit = nil, false
	c.invalidated++
	return nil
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishReservationAdmitted(ctx context.Context, reservation *entity.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func newCatalog(s *store, cache RoomCache) *catalogService {
	if cache == nil {
		cache = noopCache{}
	}
	svc := NewCatalogService(s.repository(), cache, zap.NewNop()).(*catalogService)
	svc.now = fixedClock
	return svc
}

func newReservations(s *store, publisher ReservationPublisher) *reservationService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	svc := NewReservationService(s.repository(), publisher, zap.NewNop()).(*reservationService)
	svc.now = fixedClock
	return svc
}
