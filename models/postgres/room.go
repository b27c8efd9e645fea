package postgres

import (
	game_constants "TuneBlitz/constants/game"
	"errors"
	"math/rand"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

/*
 * 'Room' defines the structure of a TuneBlitz game room.
 * It contains references to the Player roster and the GameSong round material.
 */
type Room struct {
	ID       string `gorm:"primaryKey;size:50;not null" json:"id"`
	JoinCode string `gorm:"size:6;not null;uniqueIndex:idx_rooms_join_code" json:"join_code"`
	// HostID is assigned in a second step after the host player row exists,
	// so readers must tolerate it being NULL while a room is being created.
	HostID             *string   `gorm:"size:50;index:idx_rooms_host" json:"host_id"`
	Status             string    `gorm:"size:10;default:lobby;index:idx_rooms_status" json:"status"`
	CurrentRoundIndex  int       `gorm:"default:0" json:"current_round_index"`
	SelectedPlaylistID *int64    `json:"selected_playlist_id"`
	CreatedAt          time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	Players []*Player   `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Songs   []*GameSong `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Random join code generation
const joinCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateJoinCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = joinCodeCharset[rand.Intn(len(joinCodeCharset))]
	}
	return string(b)
}

// BeforeCreate draws a join code when none is set. Uniqueness is enforced
// by the index; creators retry on the constraint violation, so two rooms
// drawing the same code at the same moment never both land.
func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.JoinCode == "" {
		r.JoinCode = GenerateJoinCode(game_constants.JoinCodeLength)
	}
	return nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
