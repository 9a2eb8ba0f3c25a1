package storage

import (
	"context"

	"github.com/pongelo/pongelo/internal/model"
)

// ResolveFunc is invoked by ResolveMatch with the stored match and its two
// players, fetched fresh inside the store's transactional scope. It mutates
// the match to a terminal status and updates the players in place; returning
// an error aborts the resolution with no writes.
type ResolveFunc func(match *model.Match, players map[string]*model.Player) error

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, name string) (*model.Player, error)
	DeletePlayer(ctx context.Context, name string) error
	// ListPlayers returns all players in insertion order.
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Match operations
	// CreateMatch assigns an ID, forces status pending, and persists the match.
	CreateMatch(ctx context.Context, match *model.Match) (*model.Match, error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	// ListMatches returns matches in creation order; an empty status means all.
	ListMatches(ctx context.Context, status model.MatchStatus) ([]*model.Match, error)

	// ResolveMatch transitions a pending match to a terminal status together
	// with both player updates: all three writes commit or none do. Resolution
	// of the same match is serialized; a match already terminal yields
	// model.ErrMatchAlreadyResolved, and a conflicting concurrent write to
	// either player yields model.ErrConcurrentUpdate without committing.
	ResolveMatch(ctx context.Context, id model.MatchID, resolve ResolveFunc) error
}
