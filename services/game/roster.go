package game

import (
	models "TuneBlitz/models/postgres"
	"sort"
)

// Roster maintains the set of players of one room as seen through the
// notification streams. Every apply is an idempotent fold: each inbound
// entity is the authoritative full replacement of that player, so applying
// the same event twice leaves the roster unchanged.
type Roster struct {
	order   []string
	players map[string]models.Player
}

func NewRoster() *Roster {
	return &Roster{
		players: make(map[string]models.Player),
	}
}

// Load replaces the roster with a bulk snapshot, ordered by join order.
func (r *Roster) Load(players []models.Player) {
	r.order = r.order[:0]
	r.players = make(map[string]models.Player, len(players))

	sorted := make([]models.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].JoinOrder < sorted[j].JoinOrder
	})

	for _, p := range sorted {
		r.order = append(r.order, p.ID)
		r.players[p.ID] = p
	}
}

// ApplyInsert folds a player insert event. A duplicate insert for an id
// already present overwrites the stored entity instead of duplicating it.
func (r *Roster) ApplyInsert(p models.Player) {
	if _, exists := r.players[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.players[p.ID] = p
}

// ApplyUpdate folds a player update event. An update for an unknown id is
// treated as an insert, since the entity is a full replacement.
func (r *Roster) ApplyUpdate(p models.Player) {
	r.ApplyInsert(p)
}

// ApplyDelete folds a player delete event. Deleting an absent id is a no-op.
func (r *Roster) ApplyDelete(playerId string) {
	if _, exists := r.players[playerId]; !exists {
		return
	}
	delete(r.players, playerId)
	for i, id := range r.order {
		if id == playerId {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the stored player entity for an id.
func (r *Roster) Get(playerId string) (models.Player, bool) {
	p, ok := r.players[playerId]
	return p, ok
}

// Len returns the number of players currently in the roster.
func (r *Roster) Len() int {
	return len(r.players)
}

// Players returns the roster in join order.
func (r *Roster) Players() []models.Player {
	out := make([]models.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// RankedPlayer is one leaderboard entry.
type RankedPlayer struct {
	models.Player
	Rank int `json:"rank"`
}

// Leaderboard returns the roster sorted by score descending. The sort is
// stable over join order, so tied players keep their join order rank.
func (r *Roster) Leaderboard() []RankedPlayer {
	players := r.Players()
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})

	ranked := make([]RankedPlayer, len(players))
	for i, p := range players {
		ranked[i] = RankedPlayer{Player: p, Rank: i + 1}
	}
	return ranked
}

// Leaderboard is the standalone variant used where no Roster is kept, e.g.
// to order a fresh database read for the results endpoint.
func Leaderboard(players []models.Player) []RankedPlayer {
	r := NewRoster()
	r.Load(players)
	return r.Leaderboard()
}
