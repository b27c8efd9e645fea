package game

import (
	"testing"

	models "TuneBlitz/models/postgres"

	"github.com/stretchr/testify/assert"
)

func rosterPlayer(id, name string, joinOrder, score int) models.Player {
	return models.Player{ID: id, Name: name, JoinOrder: joinOrder, Score: score}
}

func TestRosterLoadOrdersByJoinOrder(t *testing.T) {
	r := NewRoster()
	r.Load([]models.Player{
		rosterPlayer("p3", "Carol", 2, 0),
		rosterPlayer("p1", "Alice", 0, 0),
		rosterPlayer("p2", "Bob", 1, 0),
	})

	players := r.Players()
	assert.Len(t, players, 3)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, "Bob", players[1].Name)
	assert.Equal(t, "Carol", players[2].Name)
}

func TestRosterDuplicateInsertIsIdempotent(t *testing.T) {
	r := NewRoster()
	p := rosterPlayer("p1", "Alice", 0, 0)

	r.ApplyInsert(p)
	r.ApplyInsert(p)

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []string{"p1"}, func() []string {
		ids := make([]string, 0)
		for _, pl := range r.Players() {
			ids = append(ids, pl.ID)
		}
		return ids
	}())
}

func TestRosterUpdateForUnknownIdInserts(t *testing.T) {
	r := NewRoster()
	r.ApplyUpdate(rosterPlayer("p9", "Eve", 4, 30))

	stored, ok := r.Get("p9")
	assert.True(t, ok)
	assert.Equal(t, 30, stored.Score)
}

func TestRosterUpdateReplacesEntity(t *testing.T) {
	r := NewRoster()
	r.ApplyInsert(rosterPlayer("p1", "Alice", 0, 0))

	updated := rosterPlayer("p1", "Alice", 0, 120)
	r.ApplyUpdate(updated)

	stored, _ := r.Get("p1")
	assert.Equal(t, 120, stored.Score)
	assert.Equal(t, 1, r.Len())
}

func TestRosterDeleteAbsentIsNoop(t *testing.T) {
	r := NewRoster()
	r.ApplyInsert(rosterPlayer("p1", "Alice", 0, 0))

	r.ApplyDelete("ghost")
	r.ApplyDelete("ghost")

	assert.Equal(t, 1, r.Len())
}

func TestRosterDeleteRemovesFromOrder(t *testing.T) {
	r := NewRoster()
	r.Load([]models.Player{
		rosterPlayer("p1", "Alice", 0, 0),
		rosterPlayer("p2", "Bob", 1, 0),
		rosterPlayer("p3", "Carol", 2, 0),
	})

	r.ApplyDelete("p2")

	players := r.Players()
	assert.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, "Carol", players[1].Name)
}

// Replaying a leave/rejoin interleaving in either arrival order converges to
// the same roster.
func TestRosterConvergesAcrossEventOrderings(t *testing.T) {
	alice := rosterPlayer("p1", "Alice", 0, 50)
	bob := rosterPlayer("p2", "Bob", 1, 0)

	a := NewRoster()
	a.ApplyInsert(alice)
	a.ApplyInsert(bob)
	a.ApplyDelete("p2")
	a.ApplyInsert(bob)

	b := NewRoster()
	b.ApplyInsert(alice)
	b.ApplyInsert(bob)
	b.ApplyInsert(bob)
	b.ApplyDelete("p2")
	b.ApplyInsert(bob)

	assert.Equal(t, a.Players(), b.Players())
}

func TestLeaderboardSortsByScoreDescending(t *testing.T) {
	ranked := Leaderboard([]models.Player{
		rosterPlayer("p1", "Alice", 0, 70),
		rosterPlayer("p2", "Bob", 1, 135),
		rosterPlayer("p3", "Carol", 2, 0),
	})

	assert.Equal(t, "Bob", ranked[0].Name)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Alice", ranked[1].Name)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, "Carol", ranked[2].Name)
	assert.Equal(t, 3, ranked[2].Rank)
}

func TestLeaderboardTiesKeepJoinOrder(t *testing.T) {
	ranked := Leaderboard([]models.Player{
		rosterPlayer("p2", "Bob", 1, 100),
		rosterPlayer("p1", "Alice", 0, 100),
		rosterPlayer("p3", "Carol", 2, 100),
	})

	assert.Equal(t, "Alice", ranked[0].Name)
	assert.Equal(t, "Bob", ranked[1].Name)
	assert.Equal(t, "Carol", ranked[2].Name)
}
