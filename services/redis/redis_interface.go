package redis

import (
	redis_models "TuneBlitz/models/redis"
	redis_utils "TuneBlitz/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveRoomState stores a room's volatile round state in Redis
// Key format: "room:{id}:state"
// TTL: 24 hours
func (rc *RedisClient) SaveRoomState(state *redis_models.RoomState) error {
	key := redis_utils.FormatRoomStateKey(state.RoomID)
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("error marshaling room state: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, 24*time.Hour).Err()
}

// GetRoomState retrieves a room's volatile round state from Redis
// Key format: "room:{id}:state"
// Returns: RoomState struct or error; (nil, nil) when no state is stored
func (rc *RedisClient) GetRoomState(roomId string) (*redis_models.RoomState, error) {
	key := redis_utils.FormatRoomStateKey(roomId)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting room state: %v", err)
	}

	var state redis_models.RoomState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("error unmarshaling room state: %v", err)
	}
	return &state, nil
}

// MarkSubmitted records that a player has submitted an answer for a round.
// Returns true when this was the first submission (SETNX semantics), so a
// duplicate submission for the same round never scores twice.
// Key format: "room:{id}:round:{n}:submitted:{player}"
func (rc *RedisClient) MarkSubmitted(roomId string, round int, playerId string) (bool, error) {
	key := redis_utils.FormatSubmissionKey(roomId, round, playerId)
	first, err := rc.client.SetNX(rc.ctx, key, time.Now().Unix(), 24*time.Hour).Result()
	if err != nil {
		return false, fmt.Errorf("error marking submission: %v", err)
	}
	return first, nil
}

// HasSubmitted reports whether a player already submitted for a round.
func (rc *RedisClient) HasSubmitted(roomId string, round int, playerId string) (bool, error) {
	key := redis_utils.FormatSubmissionKey(roomId, round, playerId)
	n, err := rc.client.Exists(rc.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("error checking submission: %v", err)
	}
	return n > 0, nil
}

// DeleteRoomData removes all volatile keys of a room (state and submission
// guards) once the game is over.
func (rc *RedisClient) DeleteRoomData(roomId string) error {
	pattern := redis_utils.FormatRoomKeyPattern(roomId)
	iter := rc.client.Scan(rc.ctx, 0, pattern, 0).Iterator()

	pipe := rc.client.Pipeline()
	for iter.Next(rc.ctx) {
		pipe.Del(rc.ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning room keys: %v", err)
	}

	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error deleting room data: %v", err)
	}
	return nil
}
