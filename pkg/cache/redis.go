package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dorm-booking/internal/data/entity"
	"dorm-booking/pkg/utils"

	redis "github.com/redis/go-redis/v9"
)

// RoomsKey holds the JSON encoded room catalog
const RoomsKey = "catalog:rooms:all"

func NewRedisClient(config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", config.Addr, err)
	}

	return client, nil
}

// RoomCache caches the full room list. Rooms are immutable once created, so the
// entry only changes when a room is added or removed.
type RoomCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRoomCache(client *redis.Client, ttl time.Duration) *RoomCache {
	return &RoomCache{client: client, ttl: ttl}
}

// GetRooms reports a miss as false with a nil error
func (c *RoomCache) GetRooms(ctx context.Context) ([]*entity.Room, bool, error) {
	data, err := c.client.Get(ctx, RoomsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached rooms: %w", err)
	}

	var rooms []*entity.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, false, fmt.Errorf("decode cached rooms: %w", err)
	}

	return rooms, true, nil
}

func (c *RoomCache) SetRooms(ctx context.Context, rooms []*entity.Room) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("encode rooms: %w", err)
	}
	return c.client.Set(ctx, RoomsKey, data, c.ttl).Err()
}

func (c *RoomCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, RoomsKey).Err()
}
