package memory

import (
	"context"
	"sync"

	"github.com/pongelo/pongelo/internal/model"
	"github.com/pongelo/pongelo/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players     map[string]*model.Player
	playerOrder []string
	matches     map[model.MatchID]*model.Match
	matchOrder  []model.MatchID
	nextMatchID model.MatchID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[string]*model.Player),
		matches: make(map[model.MatchID]*model.Match),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.Name]; !ok {
		s.playerOrder = append(s.playerOrder, player.Name)
	}
	p := *player
	s.players[player.Name] = &p
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[name]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[name]; !ok {
		return nil
	}
	delete(s.players, name)
	for i, n := range s.playerOrder {
		if n == name {
			s.playerOrder = append(s.playerOrder[:i], s.playerOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.playerOrder))
	for _, name := range s.playerOrder {
		p := *s.players[name]
		players = append(players, &p)
	}
	return players, nil
}

// Match operations

func (s *Storage) CreateMatch(ctx context.Context, match *model.Match) (*model.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMatchID++
	m := *match
	m.ID = s.nextMatchID
	m.Status = model.MatchStatusPending
	s.matches[m.ID] = &m
	s.matchOrder = append(s.matchOrder, m.ID)
	created := m
	return &created, nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	m := *match
	return &m, nil
}

func (s *Storage) ListMatches(ctx context.Context, status model.MatchStatus) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]*model.Match, 0, len(s.matchOrder))
	for _, id := range s.matchOrder {
		match := s.matches[id]
		if status != "" && match.Status != status {
			continue
		}
		m := *match
		matches = append(matches, &m)
	}
	return matches, nil
}

// ResolveMatch serializes all resolutions under the store's write lock, so
// exactly one of two concurrent resolves of the same pending match commits.
func (s *Storage) ResolveMatch(ctx context.Context, id model.MatchID, resolve storage.ResolveFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.matches[id]
	if !ok {
		return model.ErrMatchNotFound
	}
	if stored.Status.Terminal() {
		return model.ErrMatchAlreadyResolved
	}

	p1, ok := s.players[stored.Player1]
	if !ok {
		return model.ErrPlayerNotFound
	}
	p2, ok := s.players[stored.Player2]
	if !ok {
		return model.ErrPlayerNotFound
	}

	// Work on copies so an aborted resolve leaves no partial mutation
	match := *stored
	player1 := *p1
	player2 := *p2

	err := resolve(&match, map[string]*model.Player{
		player1.Name: &player1,
		player2.Name: &player2,
	})
	if err != nil {
		return err
	}

	s.matches[id] = &match
	s.players[player1.Name] = &player1
	s.players[player2.Name] = &player2
	return nil
}
