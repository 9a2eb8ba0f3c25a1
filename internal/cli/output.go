package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printRankings(v)
	case Record:
		o.printRecord(v)
	case Match:
		o.printMatch(v)
	case []Match:
		o.printMatches(v)
	case ConfirmResult:
		o.printConfirmResult(v)
	case PreviewResult:
		o.printPreviewResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Record response type
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Match response type
type Match struct {
	ID          int64     `json:"id"`
	Player1     string    `json:"player1"`
	Player2     string    `json:"player2"`
	P1Score     int       `json:"p1_score"`
	P2Score     int       `json:"p2_score"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// RatingUpdate response type
type RatingUpdate struct {
	Name      string `json:"name"`
	NewRating int    `json:"new_rating"`
	Won       bool   `json:"won"`
	Delta     int    `json:"delta"`
}

// ConfirmResult response type
type ConfirmResult struct {
	Match   Match        `json:"match"`
	Player1 RatingUpdate `json:"player1"`
	Player2 RatingUpdate `json:"player2"`
}

// PreviewResult response type
type PreviewResult struct {
	Player1 RatingUpdate `json:"player1"`
	Player2 RatingUpdate `json:"player2"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.Name)
	fmt.Printf("Rating: %d\n", p.Rating)
	fmt.Printf("Record: %d-%d\n", p.Wins, p.Losses)
}

func (o *Output) printRankings(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players")
		return
	}
	for i, p := range players {
		fmt.Printf("%3d. %-20s %5d  (%d-%d)\n", i+1, p.Name, p.Rating, p.Wins, p.Losses)
	}
}

func (o *Output) printRecord(r Record) {
	fmt.Printf("Record: %d-%d\n", r.Wins, r.Losses)
}

func (o *Output) printMatch(m Match) {
	fmt.Printf("Match #%d [%s]\n", m.ID, m.Status)
	fmt.Printf("  %s %d - %d %s\n", m.Player1, m.P1Score, m.P2Score, m.Player2)
	fmt.Printf("  Submitted: %s\n", m.SubmittedAt.Format(time.RFC3339))
}

func (o *Output) printMatches(matches []Match) {
	if len(matches) == 0 {
		fmt.Println("No matches")
		return
	}
	for _, m := range matches {
		fmt.Printf("#%-5d %-10s %s %d - %d %s\n", m.ID, m.Status, m.Player1, m.P1Score, m.P2Score, m.Player2)
	}
}

func (o *Output) printRatingUpdate(u RatingUpdate) {
	outcome := "loss"
	if u.Won {
		outcome = "win"
	}
	fmt.Printf("  %s: %d (%+d, %s)\n", u.Name, u.NewRating, u.Delta, outcome)
}

func (o *Output) printConfirmResult(r ConfirmResult) {
	fmt.Printf("Match #%d confirmed\n", r.Match.ID)
	o.printRatingUpdate(r.Player1)
	o.printRatingUpdate(r.Player2)
}

func (o *Output) printPreviewResult(r PreviewResult) {
	fmt.Println("Hypothetical result:")
	o.printRatingUpdate(r.Player1)
	o.printRatingUpdate(r.Player2)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
