package repository

import (
	"context"
	"testing"

	"dorm-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRoomDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"already gone", 0, ErrRoomGone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newMockPool(t)
			repo := NewRoomRepository(pool, zap.NewNop())
			id := uuid.New()

			pool.ExpectExec(quoted(`DELETE FROM rooms WHERE id = $1`)).
				WithArgs(id).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			err := repo.Delete(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, pool.ExpectationsWereMet())
		})
	}
}

func TestCreateBatchIfEmpty_SkipsFilledCatalog(t *testing.T) {
	pool := newMockPool(t)
	repo := NewRoomRepository(pool, zap.NewNop())

	pool.ExpectBegin()
	pool.ExpectExec(quoted(`LOCK TABLE rooms IN SHARE ROW EXCLUSIVE MODE`)).
		WillReturnResult(pgxmock.NewResult("LOCK TABLE", 0))
	pool.ExpectQuery(quoted(`SELECT EXISTS (SELECT 1 FROM rooms)`)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	pool.ExpectRollback()

	inserted, err := repo.CreateBatchIfEmpty(context.Background(), []*entity.Room{{City: "Kraków"}})

	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestFindRoomByID_NoRows(t *testing.T) {
	pool := newMockPool(t)
	repo := NewRoomRepository(pool, zap.NewNop())
	id := uuid.New()

	pool.ExpectQuery(quoted(`FROM rooms WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "city", "street", "room_type", "mini_kitchenette", "private_bathroom", "price", "image_name", "created_at",
		}))

	room, err := repo.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Nil(t, room)
}
