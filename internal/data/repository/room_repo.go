package repository

import (
	"context"
	"fmt"

	"dorm-booking/internal/data/entity"
	"dorm-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	CreateBatchIfEmpty(ctx context.Context, rooms []*entity.Room) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindAll(ctx context.Context) ([]*entity.Room, error)
	CountAll(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

const roomColumns = `id, city, street, room_type, mini_kitchenette, private_bathroom, price, image_name, created_at`

const insertRoomQuery = `
	INSERT INTO rooms (id, city, street, room_type, mini_kitchenette, private_bathroom, price, image_name, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

func roomArgs(room *entity.Room) []any {
	return []any{
		room.ID,
		room.City,
		room.Street,
		room.RoomType,
		room.HasKitchenette,
		room.HasPrivateBathroom,
		room.Price,
		room.ImageName,
		room.CreatedAt,
	}
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	if _, err := r.db.Exec(ctx, insertRoomQuery, roomArgs(room)...); err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("city", room.City),
			zap.String("room_type", string(room.RoomType)),
		)
		return fmt.Errorf("create room in %s: %w", room.City, err)
	}

	return nil
}

// CreateBatchIfEmpty inserts all rooms or none, and only when the table holds
// no rooms yet. The table lock keeps two concurrent seeders from both inserting.
func (r *roomRepository) CreateBatchIfEmpty(ctx context.Context, rooms []*entity.Room) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin room batch: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `LOCK TABLE rooms IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return false, fmt.Errorf("lock rooms table: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM rooms)`).Scan(&exists); err != nil {
		r.log.Error("Failed to check for existing rooms", zap.Error(err))
		return false, fmt.Errorf("check existing rooms: %w", err)
	}
	if exists {
		return false, nil
	}

	batch := &pgx.Batch{}
	for _, room := range rooms {
		batch.Queue(insertRoomQuery, roomArgs(room)...)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.log.Error("Failed to insert room batch", zap.Error(err), zap.Int("count", len(rooms)))
		return false, fmt.Errorf("insert %d rooms: %w", len(rooms), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit room batch: %w", err)
	}

	return true, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id.String(), err)
	}

	return room, nil
}

func (r *roomRepository) FindAll(ctx context.Context) ([]*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all rooms", zap.Error(err))
		return nil, fmt.Errorf("find all rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*entity.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&total); err != nil {
		r.log.Error("Failed to count rooms", zap.Error(err))
		return 0, fmt.Errorf("count rooms: %w", err)
	}

	return total, nil
}

// Delete removes the room; its reservations go with it (ON DELETE CASCADE)
func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete room",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return fmt.Errorf("delete room %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrRoomGone
	}

	r.log.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID,
		&room.City,
		&room.Street,
		&room.RoomType,
		&room.HasKitchenette,
		&room.HasPrivateBathroom,
		&room.Price,
		&room.ImageName,
		&room.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
