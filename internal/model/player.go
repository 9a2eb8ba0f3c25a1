package model

import "time"

// InitialRating is assigned to every newly created player.
const InitialRating = 1600

// Player represents a ladder participant. Names are unique and case-sensitive.
type Player struct {
	Name         string
	Rating       int
	Wins         int
	Losses       int
	PasswordHash string // bcrypt hash, used only for identity verification
	CreatedAt    time.Time
}
