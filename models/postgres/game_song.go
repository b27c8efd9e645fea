package postgres

/*
 * 'GameSong' is one entry of a room's round material. The full list is
 * inserted in bulk when the host starts the game and never changes afterwards.
 */
type GameSong struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID     string `gorm:"size:50;not null;index:idx_game_songs_room" json:"room_id"`
	Position   int    `gorm:"not null" json:"position"`
	SongTitle  string `gorm:"size:255;not null" json:"song_title"`
	ArtistName string `gorm:"size:255;not null" json:"artist_name"`
	PreviewURL string `gorm:"size:512" json:"preview_url"`

	// Relationship with the room
	Room Room `gorm:"foreignKey:RoomID" json:"-"`
}
