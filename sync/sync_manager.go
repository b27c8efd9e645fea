package sync

import (
	"TuneBlitz/services/redis"
	"database/sql"
	"fmt"
)

// SyncManager settles a finished game: it marks the winners in PostgreSQL
// and drops the room's volatile Redis state. Scores themselves are already
// durable, every submission writes them straight to the players table.
type SyncManager struct {
	redisClient *redis.RedisClient
	db          *sql.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, db *sql.DB) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
	}
}

// MarkWinners flags every player holding the room's top score. Ties produce
// multiple winners.
func (sm *SyncManager) MarkWinners(roomId string) error {
	query := `
		UPDATE players
		SET winner = TRUE
		WHERE room_id = $1
		  AND score = (SELECT MAX(score) FROM players WHERE room_id = $1)
	`
	if _, err := sm.db.Exec(query, roomId); err != nil {
		return fmt.Errorf("error marking winners in PostgreSQL: %v", err)
	}
	return nil
}

// CleanupGameData settles the final state and cleans Redis
func (sm *SyncManager) CleanupGameData(roomId string) error {
	if err := sm.MarkWinners(roomId); err != nil {
		return err
	}

	if err := sm.redisClient.DeleteRoomData(roomId); err != nil {
		return fmt.Errorf("error cleaning Redis data: %v", err)
	}
	return nil
}
