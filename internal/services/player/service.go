package player

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"golang.org/x/crypto/bcrypt"

	"github.com/pongelo/pongelo/internal/dependencies/clock"
	"github.com/pongelo/pongelo/internal/model"
	"github.com/pongelo/pongelo/internal/storage"
)

// Service manages player accounts and the rankings projection
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Create registers a new player at the initial rating.
// Names are unique and case-sensitive; a collision yields model.ErrPlayerExists.
func (s *Service) Create(ctx context.Context, name, credential string) (*model.Player, error) {
	_, err := s.storage.GetPlayer(ctx, name)
	if err == nil {
		return nil, model.ErrPlayerExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	player := &model.Player{
		Name:         name,
		Rating:       model.InitialRating,
		Wins:         0,
		Losses:       0,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		s.logger.Error("failed to save player",
			slog.String("player", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player", name),
		slog.Int("rating", player.Rating),
	)

	return player, nil
}

// Get retrieves a player by name
func (s *Service) Get(ctx context.Context, name string) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, name)
}

// List returns all players in insertion order
func (s *Service) List(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// Delete removes a player. Administrative operation: it does not touch the
// player's recorded matches.
func (s *Service) Delete(ctx context.Context, name string) error {
	if _, err := s.storage.GetPlayer(ctx, name); err != nil {
		return err
	}
	if err := s.storage.DeletePlayer(ctx, name); err != nil {
		return err
	}
	s.logger.Info("player deleted", slog.String("player", name))
	return nil
}

// Rankings returns all players sorted by rating descending.
// Ties keep insertion order (stable sort over the store's ordering).
func (s *Service) Rankings(ctx context.Context) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Rating > players[j].Rating
	})

	return players, nil
}

// VerifyIdentity checks a name/credential pair against the stored hash.
// Unknown players verify as false, never as an error.
func (s *Service) VerifyIdentity(ctx context.Context, name, credential string) bool {
	player, err := s.storage.GetPlayer(ctx, name)
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(credential)) == nil
}
