package model

import "time"

// MatchID uniquely identifies a match; assigned by the store at creation
type MatchID int64

// MatchStatus is the confirmation state of a reported match
type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusConfirmed MatchStatus = "confirmed"
	MatchStatusDenied    MatchStatus = "denied"
)

// Terminal reports whether no further transition is permitted from s
func (s MatchStatus) Terminal() bool {
	return s == MatchStatusConfirmed || s == MatchStatusDenied
}

// Valid reports whether s is a known status
func (s MatchStatus) Valid() bool {
	return s == MatchStatusPending || s.Terminal()
}

// Match is a reported game result awaiting two-party confirmation.
// Player1 is always the reporting party; Player2 must confirm or deny.
// Status is monotonic: once terminal it never changes.
type Match struct {
	ID          MatchID
	Player1     string
	Player2     string
	P1Score     int
	P2Score     int
	Status      MatchStatus
	SubmittedAt time.Time
}
