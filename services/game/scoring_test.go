package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSubmissionMatchTable(t *testing.T) {
	const correctTitle = "Blue Monday"
	const correctArtist = "New Order"

	tests := []struct {
		name          string
		titleGuess    string
		artistGuess   string
		timeRemaining int
		wantPoints    int
		wantTitle     bool
		wantArtist    bool
	}{
		{"neither correct", "Bizarre Love Triangle", "Depeche Mode", 10, 10, false, false},
		{"title only", "Blue Monday", "Depeche Mode", 10, 60, true, false},
		{"artist only", "True Faith", "New Order", 10, 60, false, true},
		{"both correct", "Blue Monday", "New Order", 10, 120, true, true},
		{"both correct at zero", "Blue Monday", "New Order", 0, 120, true, true},
		{"both correct full speed", "Blue Monday", "New Order", 15, 135, true, true},
		{"neither at zero", "x", "y", 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			award := ScoreSubmission(tt.titleGuess, tt.artistGuess,
				correctTitle, correctArtist, tt.timeRemaining)
			assert.Equal(t, tt.wantPoints, award.Points)
			assert.Equal(t, tt.wantTitle, award.TitleCorrect)
			assert.Equal(t, tt.wantArtist, award.ArtistCorrect)
		})
	}
}

func TestScoreSubmissionNormalization(t *testing.T) {
	award := ScoreSubmission("  blue monday  ", "NEW ORDER", "Blue Monday", "New Order", 7)
	assert.True(t, award.TitleCorrect)
	assert.True(t, award.ArtistCorrect)
	assert.Equal(t, 127, award.Points)
}

func TestScoreSubmissionScenarioB(t *testing.T) {
	award := ScoreSubmission("Blue Monday", "New Order", "Blue Monday", "New Order", 7)
	assert.Equal(t, 50+50+20+7, award.Points)
}

func TestScoreSubmissionClampsTimeRemaining(t *testing.T) {
	// Out-of-range countdown values never leak into the award
	low := ScoreSubmission("a", "b", "x", "y", -3)
	assert.Equal(t, 0, low.Points)

	high := ScoreSubmission("a", "b", "x", "y", 99)
	assert.Equal(t, 15, high.Points)
}

func TestScoreSubmissionEmptyGuessNeverMatches(t *testing.T) {
	// An empty guess must not match even an empty correct value
	award := ScoreSubmission("", "", "", "", 5)
	assert.False(t, award.TitleCorrect)
	assert.False(t, award.ArtistCorrect)
	assert.Equal(t, 5, award.Points)
}

func TestScoreSubmissionAwardSet(t *testing.T) {
	// For any match combination the award is time, time+50, time+100 or time+120
	for timeRemaining := 0; timeRemaining <= 15; timeRemaining++ {
		valid := map[int]bool{
			timeRemaining:       true,
			timeRemaining + 50:  true,
			timeRemaining + 100: true,
			timeRemaining + 120: true,
		}
		for _, guesses := range [][2]string{
			{"wrong", "wrong"},
			{"Blue Monday", "wrong"},
			{"wrong", "New Order"},
			{"Blue Monday", "New Order"},
		} {
			award := ScoreSubmission(guesses[0], guesses[1],
				"Blue Monday", "New Order", timeRemaining)
			assert.True(t, valid[award.Points],
				"award %d not in the valid set for t=%d", award.Points, timeRemaining)
		}
	}
}
