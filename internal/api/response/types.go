package response

import (
	"time"

	"github.com/pongelo/pongelo/internal/model"
	"github.com/pongelo/pongelo/internal/rating"
)

// Player represents a player in API responses
type Player struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Name:   p.Name,
		Rating: p.Rating,
		Wins:   p.Wins,
		Losses: p.Losses,
	}
}

// PlayersFromModel converts a slice of model players
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Record is a player's win/loss record
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Match represents a match in API responses
type Match struct {
	ID          int64     `json:"id"`
	Player1     string    `json:"player1"`
	Player2     string    `json:"player2"`
	P1Score     int       `json:"p1_score"`
	P2Score     int       `json:"p2_score"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// MatchFromModel converts a model.Match to a response Match
func MatchFromModel(m *model.Match) Match {
	return Match{
		ID:          int64(m.ID),
		Player1:     m.Player1,
		Player2:     m.Player2,
		P1Score:     m.P1Score,
		P2Score:     m.P2Score,
		Status:      string(m.Status),
		SubmittedAt: m.SubmittedAt,
	}
}

// MatchesFromModel converts a slice of model matches
func MatchesFromModel(matches []*model.Match) []Match {
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = MatchFromModel(m)
	}
	return out
}

// RatingUpdate is one side of a rating adjustment
type RatingUpdate struct {
	Name      string `json:"name"`
	NewRating int    `json:"new_rating"`
	Won       bool   `json:"won"`
	Delta     int    `json:"delta"`
}

// RatingUpdateFromEngine converts a rating.Update
func RatingUpdateFromEngine(u rating.Update) RatingUpdate {
	return RatingUpdate{
		Name:      u.Name,
		NewRating: u.NewRating,
		Won:       u.Won,
		Delta:     u.Delta,
	}
}

// ConfirmResponse is the response after confirming a match
type ConfirmResponse struct {
	Match   Match        `json:"match"`
	Player1 RatingUpdate `json:"player1"`
	Player2 RatingUpdate `json:"player2"`
}

// PreviewResponse is the response for a rating preview
type PreviewResponse struct {
	Player1 RatingUpdate `json:"player1"`
	Player2 RatingUpdate `json:"player2"`
}
