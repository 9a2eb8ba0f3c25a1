package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player name already exists")

	// Match errors
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchAlreadyResolved = errors.New("match is already confirmed or denied")
	ErrSamePlayer           = errors.New("a match requires two distinct players")
	ErrInvalidScore         = errors.New("scores must be non-negative")

	// Workflow authorization errors
	ErrUnauthorizedReporter  = errors.New("submitter must report themselves as player 1")
	ErrUnauthorizedConfirmer = errors.New("only player 2 may confirm or deny a match")

	// Storage errors
	ErrConcurrentUpdate = errors.New("concurrent update conflict")
)
