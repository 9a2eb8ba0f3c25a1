package request

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SubmitMatchRequest is the request body for reporting a result.
// The authenticated caller must be player1.
type SubmitMatchRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	P1Score int    `json:"p1_score"`
	P2Score int    `json:"p2_score"`
}

// PreviewRequest is the request body for a rating preview
type PreviewRequest struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	P1Score int    `json:"p1_score"`
	P2Score int    `json:"p2_score"`
}
