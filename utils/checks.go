package utils

import (
	"strings"

	models "TuneBlitz/models/postgres"

	"gorm.io/gorm"
)

// NormalizeJoinCode upper-cases and trims a human-entered join code so
// comparison and display are case-insensitive.
func NormalizeJoinCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func FindRoomByCode(db *gorm.DB, joinCode string) (*models.Room, error) {
	var room models.Room
	err := db.Where("join_code = ?", NormalizeJoinCode(joinCode)).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func FindRoomByID(db *gorm.DB, roomId string) (*models.Room, error) {
	var room models.Room
	err := db.Where("id = ?", roomId).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func FindPlayer(db *gorm.DB, playerId string) (*models.Player, error) {
	var player models.Player
	err := db.Where("id = ?", playerId).First(&player).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// IsPlayerInRoom checks whether a player row belongs to the given room.
func IsPlayerInRoom(db *gorm.DB, roomId string, playerId string) (bool, error) {
	var count int64
	err := db.Model(&models.Player{}).
		Where("room_id = ? AND id = ?", roomId, playerId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func CountPlayers(db *gorm.DB, roomId string) (int, error) {
	var count int64
	err := db.Model(&models.Player{}).Where("room_id = ?", roomId).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// NextJoinOrder returns the join order to assign to the next player of a
// room. Callers run it through the room coordinator, so two concurrent
// joins never read the same value.
func NextJoinOrder(db *gorm.DB, roomId string) (int, error) {
	var max int64
	err := db.Model(&models.Player{}).
		Where("room_id = ?", roomId).
		Select("COALESCE(MAX(join_order), -1)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return int(max) + 1, nil
}

// RemovePlayer deletes a player row and returns how many players the room
// still has, so callers can tear down per-room resources once it hits zero.
func RemovePlayer(db *gorm.DB, player *models.Player) (int, error) {
	if err := db.Delete(player).Error; err != nil {
		return 0, err
	}
	return CountPlayers(db, player.RoomID)
}

// RoomSongs returns the round material of a room ordered by position.
func RoomSongs(db *gorm.DB, roomId string) ([]models.GameSong, error) {
	var songs []models.GameSong
	err := db.Where("room_id = ?", roomId).Order("position ASC").Find(&songs).Error
	if err != nil {
		return nil, err
	}
	return songs, nil
}

// RoomPlayers returns the roster of a room ordered by join order.
func RoomPlayers(db *gorm.DB, roomId string) ([]models.Player, error) {
	var players []models.Player
	err := db.Where("room_id = ?", roomId).Order("join_order ASC").Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}
