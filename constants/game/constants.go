package game_constants

// Room lifecycle statuses stored in the rooms table.
const (
	StatusLobby    = "lobby"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

const MaxPlayersPerRoom = 10
const MaxTracksPerGame = 10
const JoinCodeLength = 6

// Per-round countdown budget, in seconds.
const RoundSeconds = 15

// Scoring constants
const (
	TitlePoints    = 50
	ArtistPoints   = 50
	BothMatchBonus = 20
)
