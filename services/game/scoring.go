package game

import (
	game_constants "TuneBlitz/constants/game"
	"strings"
)

// Award is the outcome of scoring a single round submission.
type Award struct {
	TitleCorrect  bool `json:"title_correct"`
	ArtistCorrect bool `json:"artist_correct"`
	Points        int  `json:"points"`
}

func normalizeGuess(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ScoreSubmission computes the point award for one round submission.
// Title and artist each score 50 on a trimmed, case-insensitive match,
// matching both adds a 20 point bonus, and the remaining countdown seconds
// are added as a speed bonus. The function is pure: the caller applies the
// award on top of the player's previous score.
func ScoreSubmission(titleGuess, artistGuess, correctTitle, correctArtist string, timeRemaining int) Award {
	award := Award{}

	if timeRemaining < 0 {
		timeRemaining = 0
	} else if timeRemaining > game_constants.RoundSeconds {
		timeRemaining = game_constants.RoundSeconds
	}

	award.TitleCorrect = normalizeGuess(titleGuess) != "" &&
		normalizeGuess(titleGuess) == normalizeGuess(correctTitle)
	award.ArtistCorrect = normalizeGuess(artistGuess) != "" &&
		normalizeGuess(artistGuess) == normalizeGuess(correctArtist)

	if award.TitleCorrect {
		award.Points += game_constants.TitlePoints
	}
	if award.ArtistCorrect {
		award.Points += game_constants.ArtistPoints
	}
	if award.TitleCorrect && award.ArtistCorrect {
		award.Points += game_constants.BothMatchBonus
	}

	award.Points += timeRemaining
	return award
}
