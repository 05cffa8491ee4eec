package repository

import (
	"dorm-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Room        RoomRepository
	Reservation ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Room:        NewRoomRepository(db, log),
		Reservation: NewReservationRepository(db, log),
	}
}
