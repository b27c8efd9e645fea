package redis

import (
	"fmt"
	"log"
)

// InitRedis initializes the Redis connection and basic configuration
func InitRedis(Addr string, DB int) (*RedisClient, error) {
	rc := NewRedisClient(Addr, DB)

	// Test connection
	err := rc.client.Ping(rc.ctx).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("Successfully connected to Redis")
	return rc, nil
}

// CloseRedis gracefully closes the Redis connection
func CloseRedis(rc *RedisClient) error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Close()
}
