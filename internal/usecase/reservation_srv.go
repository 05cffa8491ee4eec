package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dorm-booking/internal/data/entity"
	"dorm-booking/internal/data/repository"
	"dorm-booking/internal/dto/request"
	"dorm-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgDateOrder         = "Check-out date must be after check-in date"
	msgFormCapacity      = "Number of people exceeds the room capacity"
	msgRoomTooSmall      = "Room is too small for the specified number of guests"
	msgRoomAlreadyTaken  = "Room already taken"
	msgPositiveHeadcount = "Ensure this value is greater than 0"
)

// Candidate is a stay that passed field validation and waits for admission.
type Candidate struct {
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfPeople int
}

// ReservationPartition splits a user's reservations into open and closed.
type ReservationPartition struct {
	Open   []*entity.Reservation
	Closed []*entity.Reservation
}

type ReservationService interface {
	// Submit runs the booking form for a room and then admits it.
	Submit(ctx context.Context, userID, roomID uuid.UUID, form *request.ReservationForm) (*entity.Reservation, error)
	// Admit re-checks the request-level rules and stores the reservation if the room is free.
	Admit(ctx context.Context, userID uuid.UUID, room *entity.Room, candidate Candidate) (*entity.Reservation, error)

	// ListForUser partitions by check-out date against today.
	ListForUser(ctx context.Context, userID uuid.UUID) (*ReservationPartition, error)
	// ListAdmittedForUser partitions by the open flag stored at admission.
	ListAdmittedForUser(ctx context.Context, userID uuid.UUID) (*ReservationPartition, error)

	// admin
	AdminCreate(ctx context.Context, req *request.AdminReservationRequest) (*entity.Reservation, error)
	AdminList(ctx context.Context, roomID uuid.UUID) ([]*entity.Reservation, error)
}

type reservationService struct {
	repo      *repository.Repository
	publisher ReservationPublisher
	log       *zap.Logger
	now       func() time.Time
}

func NewReservationService(
	repo *repository.Repository,
	publisher ReservationPublisher,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "reservation")),
		now:       time.Now,
	}
}

func (s *reservationService) Submit(ctx context.Context, userID, roomID uuid.UUID, form *request.ReservationForm) (*entity.Reservation, error) {
	// 1. Room lookup
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	// 2. Field validation
	if errs := utils.ValidateStruct(form); len(errs) > 0 {
		s.log.Warn("Reservation form validation failed",
			zap.String("room_id", roomID.String()),
			zap.Any("errors", errs))
		return nil, &AdmissionError{Kind: ErrInvalidInput, Message: "Invalid reservation form", Fields: errs}
	}

	checkIn, err := entity.ParseDate(form.CheckInDate)
	if err != nil {
		return nil, rejection(ErrInvalidInput, "check_in_date", "Enter a valid date (YYYY-MM-DD)")
	}
	checkOut, err := entity.ParseDate(form.CheckOutDate)
	if err != nil {
		return nil, rejection(ErrInvalidInput, "check_out_date", "Enter a valid date (YYYY-MM-DD)")
	}

	// 3 & 4. Form-level date order and capacity, reported together
	if rejected := checkForm(room, checkIn, checkOut, form.NumberOfPeople); rejected != nil {
		s.log.Warn("Reservation form rejected",
			zap.String("room_id", roomID.String()),
			zap.Any("errors", rejected.Fields))
		return nil, rejected
	}

	// 5 & 6. Request-level checks and storage
	return s.Admit(ctx, userID, room, Candidate{
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfPeople: form.NumberOfPeople,
	})
}

func checkForm(room *entity.Room, checkIn, checkOut time.Time, people int) *AdmissionError {
	fields := make(map[string]string)
	if checkOut.Before(checkIn) {
		fields["check_out_date"] = msgDateOrder
	}
	if people > room.BedCount() {
		fields["number_of_people"] = msgFormCapacity
	}

	switch {
	case fields["check_out_date"] != "":
		return &AdmissionError{Kind: ErrInvalidDateOrder, Field: "check_out_date", Message: msgDateOrder, Fields: fields}
	case fields["number_of_people"] != "":
		return &AdmissionError{Kind: ErrCapacityExceeded, Field: "number_of_people", Message: msgFormCapacity, Fields: fields}
	default:
		return nil
	}
}

func (s *reservationService) Admit(ctx context.Context, userID uuid.UUID, room *entity.Room, candidate Candidate) (*entity.Reservation, error) {
	checkIn := entity.DateOnly(candidate.CheckIn)
	checkOut := entity.DateOnly(candidate.CheckOut)

	if checkOut.Before(checkIn) {
		return nil, rejection(ErrInvalidDateOrder, "check_out_date", msgDateOrder)
	}
	if candidate.NumberOfPeople <= 0 {
		return nil, rejection(ErrInvalidInput, "number_of_people", msgPositiveHeadcount)
	}
	if candidate.NumberOfPeople > room.BedCount() {
		s.log.Warn("Room too small",
			zap.String("room_id", room.ID.String()),
			zap.Int("beds", room.BedCount()),
			zap.Int("people", candidate.NumberOfPeople))
		return nil, rejection(ErrCapacityExceeded, "", msgRoomTooSmall)
	}

	now := s.now()
	reservation := &entity.Reservation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:         userID,
		RoomID:         room.ID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfPeople: candidate.NumberOfPeople,
		AdmittedOpen:   entity.OpenOnAdmission(checkOut, today(s.now)),
	}

	created, err := s.repo.Reservation.CreateIfRoomFree(ctx, reservation)
	if errors.Is(err, repository.ErrRoomGone) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	if !created {
		s.log.Warn("Room already taken",
			zap.String("room_id", room.ID.String()),
			zap.String("check_in", checkIn.Format(entity.DateLayout)),
			zap.String("check_out", checkOut.Format(entity.DateLayout)))
		return nil, rejection(ErrRoomAlreadyTaken, "", msgRoomAlreadyTaken)
	}

	if err := s.publisher.PublishReservationAdmitted(ctx, reservation); err != nil {
		s.log.Warn("Failed to publish reservation event",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()))
	}

	s.log.Info("Reservation admitted",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("room_id", room.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Bool("admitted_open", reservation.AdmittedOpen))

	return reservation, nil
}

func (s *reservationService) ListForUser(ctx context.Context, userID uuid.UUID) (*ReservationPartition, error) {
	day := today(s.now)

	open, err := s.repo.Reservation.FindActiveByUser(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list open reservations: %w", err)
	}

	closed, err := s.repo.Reservation.FindEndedByUser(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed reservations: %w", err)
	}

	return &ReservationPartition{Open: open, Closed: closed}, nil
}

func (s *reservationService) ListAdmittedForUser(ctx context.Context, userID uuid.UUID) (*ReservationPartition, error) {
	open, err := s.repo.Reservation.FindByUserAndAdmittedOpen(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list open reservations: %w", err)
	}

	closed, err := s.repo.Reservation.FindByUserAndAdmittedOpen(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed reservations: %w", err)
	}

	return &ReservationPartition{Open: open, Closed: closed}, nil
}

func (s *reservationService) AdminCreate(ctx context.Context, req *request.AdminReservationRequest) (*entity.Reservation, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin reservation validation failed", zap.Any("errors", errs))
		return nil, &AdmissionError{Kind: ErrInvalidInput, Message: "Validation failed", Fields: errs}
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, rejection(ErrInvalidInput, "user_id", "Must be a valid UUID")
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, rejection(ErrInvalidInput, "room_id", "Must be a valid UUID")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	checkIn, err := entity.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, rejection(ErrInvalidInput, "check_in_date", "Enter a valid date (YYYY-MM-DD)")
	}
	checkOut, err := entity.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, rejection(ErrInvalidInput, "check_out_date", "Enter a valid date (YYYY-MM-DD)")
	}

	return s.Admit(ctx, user.ID, room, Candidate{
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfPeople: req.NumberOfPeople,
	})
}

func (s *reservationService) AdminList(ctx context.Context, roomID uuid.UUID) ([]*entity.Reservation, error) {
	if _, err := s.findRoom(ctx, roomID); err != nil {
		return nil, err
	}

	reservations, err := s.repo.Reservation.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list room reservations: %w", err)
	}
	return reservations, nil
}

func (s *reservationService) findRoom(ctx context.Context, roomID uuid.UUID) (*entity.Room, error) {
	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		s.log.Warn("Room not found", zap.String("room_id", roomID.String()))
		return nil, ErrRoomNotFound
	}
	return room, nil
}
