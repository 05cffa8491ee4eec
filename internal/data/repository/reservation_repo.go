package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dorm-booking/internal/data/entity"
	"dorm-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrRoomGone is returned when the room disappears between lookup and the write.
var ErrRoomGone = errors.New("room no longer exists")

type ReservationRepository interface {
	// CreateIfRoomFree inserts the reservation unless an open reservation on the
	// same room overlaps its window. The check and insert run in one transaction
	// holding a lock on the room row. Returns false when the room is taken.
	CreateIfRoomFree(ctx context.Context, reservation *entity.Reservation) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Reservation, error)

	// live status, compared against today at query time
	FindActiveByUser(ctx context.Context, userID uuid.UUID, today time.Time) ([]*entity.Reservation, error)
	FindEndedByUser(ctx context.Context, userID uuid.UUID, today time.Time) ([]*entity.Reservation, error)

	// stored is_open flag, frozen at admission
	FindByUserAndAdmittedOpen(ctx context.Context, userID uuid.UUID, open bool) ([]*entity.Reservation, error)

	// containment rule used by the catalog
	ExistsWithinWindow(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error)
	RoomIDsWithinWindow(ctx context.Context, start, end time.Time) ([]uuid.UUID, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, user_id, room_id, check_in_date, check_out_date, number_of_people, is_open, created_at`

func (r *reservationRepository) CreateIfRoomFree(ctx context.Context, reservation *entity.Reservation) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin admission: %w", err)
	}
	defer tx.Rollback(ctx)

	// serializes concurrent admissions for the same room
	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, reservation.RoomID).Scan(&lockedID)
	if err == pgx.ErrNoRows {
		return false, ErrRoomGone
	}
	if err != nil {
		r.log.Error("Failed to lock room", zap.Error(err), zap.String("room_id", reservation.RoomID.String()))
		return false, fmt.Errorf("lock room %s: %w", reservation.RoomID.String(), err)
	}

	overlapQuery := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE room_id = $1
			  AND is_open = TRUE
			  AND check_in_date <= $2
			  AND check_out_date >= $3
		)
	`

	var taken bool
	err = tx.QueryRow(ctx, overlapQuery,
		reservation.RoomID,
		reservation.CheckOutDate,
		reservation.CheckInDate,
	).Scan(&taken)
	if err != nil {
		r.log.Error("Failed to check overlapping reservations",
			zap.Error(err),
			zap.String("room_id", reservation.RoomID.String()),
		)
		return false, fmt.Errorf("check overlap for room %s: %w", reservation.RoomID.String(), err)
	}

	if taken {
		return false, nil
	}

	insertQuery := `
		INSERT INTO reservations (id, user_id, room_id, check_in_date, check_out_date,
		                          number_of_people, is_open, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, insertQuery,
		reservation.ID,
		reservation.UserID,
		reservation.RoomID,
		reservation.CheckInDate,
		reservation.CheckOutDate,
		reservation.NumberOfPeople,
		reservation.AdmittedOpen,
		reservation.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("room_id", reservation.RoomID.String()),
			zap.String("user_id", reservation.UserID.String()),
		)
		return false, fmt.Errorf("create reservation for room %s: %w", reservation.RoomID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit admission: %w", err)
	}

	return true, nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE room_id = $1
		ORDER BY check_in_date
	`

	return r.queryMany(ctx, "find reservations by room", query, roomID)
}

func (r *reservationRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID, today time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1 AND check_out_date >= $2
		ORDER BY check_in_date
	`

	return r.queryMany(ctx, "find active reservations", query, userID, entity.DateOnly(today))
}

func (r *reservationRepository) FindEndedByUser(ctx context.Context, userID uuid.UUID, today time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1 AND check_out_date < $2
		ORDER BY check_in_date DESC
	`

	return r.queryMany(ctx, "find ended reservations", query, userID, entity.DateOnly(today))
}

func (r *reservationRepository) FindByUserAndAdmittedOpen(ctx context.Context, userID uuid.UUID, open bool) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1 AND is_open = $2
		ORDER BY check_in_date
	`

	return r.queryMany(ctx, "find reservations by admitted status", query, userID, open)
}

func (r *reservationRepository) ExistsWithinWindow(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE room_id = $1 AND check_in_date >= $2 AND check_out_date <= $3
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, roomID, entity.DateOnly(start), entity.DateOnly(end)).Scan(&exists); err != nil {
		r.log.Error("Failed to check reservations within window",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return false, fmt.Errorf("check reservations within window for room %s: %w", roomID.String(), err)
	}

	return exists, nil
}

func (r *reservationRepository) RoomIDsWithinWindow(ctx context.Context, start, end time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT room_id FROM reservations
		WHERE check_in_date >= $1 AND check_out_date <= $2
	`

	rows, err := r.db.Query(ctx, query, entity.DateOnly(start), entity.DateOnly(end))
	if err != nil {
		r.log.Error("Failed to find rooms reserved within window", zap.Error(err))
		return nil, fmt.Errorf("find rooms reserved within window: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect room ids: %w", err)
	}

	return ids, nil
}

func (r *reservationRepository) queryMany(ctx context.Context, operation, query string, args ...any) ([]*entity.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+operation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservation rows: %w", err)
	}

	return reservations, nil
}

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.RoomID,
		&reservation.CheckInDate,
		&reservation.CheckOutDate,
		&reservation.NumberOfPeople,
		&reservation.AdmittedOpen,
		&reservation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}
