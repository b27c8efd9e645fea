package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'Player' represents a member of a room. The ID comes from the anonymous
 * identity issuance, so the same player keeps it across reconnects.
 */
type Player struct {
	ID     string `gorm:"primaryKey;size:50;not null" json:"id"`
	Name   string `gorm:"size:50;not null" json:"name"`
	RoomID string `gorm:"size:50;not null;index:idx_players_room" json:"room_id"`
	IsHost bool   `gorm:"default:false" json:"is_host"`
	Score  int    `gorm:"default:0" json:"score"`
	// JoinOrder breaks leaderboard ties: earlier joiners rank first.
	JoinOrder     int            `gorm:"default:0" json:"join_order"`
	CurrentAnswer *string        `gorm:"size:255" json:"current_answer"`
	RoundAnswers  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"-"`
	Winner        bool           `gorm:"default:false" json:"winner"`

	// Relationship with the room
	Room Room `gorm:"foreignKey:RoomID" json:"-"`
}
