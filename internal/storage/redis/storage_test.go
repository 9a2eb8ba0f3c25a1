package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/pongelo/pongelo/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		Name:      "alice",
		Rating:    1600,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(player.Name, retrieved.Name)
	s.Equal(player.Rating, retrieved.Rating)
	s.True(player.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice"})

	err := s.storage.DeletePlayer(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "alice")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestListPlayersKeepsInsertionOrder() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "carol"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "bob"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("carol", players[0].Name)
	s.Equal("alice", players[1].Name)
	s.Equal("bob", players[2].Name)
}

func (s *StorageSuite) TestResavingPlayerDoesNotDuplicateIndex() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Rating: 1600})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Rating: 1700})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(1700, players[0].Rating)
}

// Match tests

func (s *StorageSuite) TestCreateMatchAssignsSequentialIDs() {
	m1, err := s.storage.CreateMatch(s.ctx, &model.Match{Player1: "alice", Player2: "bob"})
	s.Require().NoError(err)
	m2, err := s.storage.CreateMatch(s.ctx, &model.Match{Player1: "alice", Player2: "bob"})
	s.Require().NoError(err)

	s.Equal(model.MatchID(1), m1.ID)
	s.Equal(model.MatchID(2), m2.ID)
}

func (s *StorageSuite) TestCreateMatchForcesPendingStatus() {
	m, err := s.storage.CreateMatch(s.ctx, &model.Match{
		Player1: "alice",
		Player2: "bob",
		Status:  model.MatchStatusConfirmed,
	})
	s.Require().NoError(err)
	s.Equal(model.MatchStatusPending, m.Status)

	stored, err := s.storage.GetMatch(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal(model.MatchStatusPending, stored.Status)
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, 42)
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestListMatchesFiltersByStatus() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "bob"})

	m1, _ := s.storage.CreateMatch(s.ctx, &model.Match{Player1: "alice", Player2: "bob"})
	m2, _ := s.storage.CreateMatch(s.ctx, &model.Match{Player1: "bob", Player2: "alice"})

	err := s.storage.ResolveMatch(s.ctx, m1.ID, func(m *model.Match, players map[string]*model.Player) error {
		m.Status = model.MatchStatusDenied
		return nil
	})
	s.Require().NoError(err)

	pending, err := s.storage.ListMatches(s.ctx, model.MatchStatusPending)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Equal(m2.ID, pending[0].ID)

	all, err := s.storage.ListMatches(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 2)
}

// ResolveMatch tests

func (s *StorageSuite) TestResolveMatchCommitsAllThreeRecords() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Rating: 1600})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "bob", Rating: 1600})
	m, _ := s.storage.CreateMatch(s.ctx, &model.Match{Player1: "alice", Player2: "bob"})

	err := s.storage.ResolveMatch(s.ctx, m.ID, func(m *model.Match, players map[string]*model.Player) error {
		players["alice"].Rating = 1633
		players["alice"].Wins++
		players["bob"].Rating = 1567
		players["bob"].Losses++
		m.Status = model.MatchStatusConfirmed
		return nil
	})
	s.Require().NoError(err)

	alice, _ := s.storage.GetPlayer(s.ctx, "alice")
	bob, _ := s.storage.GetPlayer(s.ctx, "bob")
	stored, _ := s.storage.GetMatch(s.ctx, m.ID)
	s.Equal(1633, alice.Rating)
	s.Equal(1, alice.Wins)
	s.Equal(1567, bob.Rating)
	s.Equal(1, bob.Losses)
	s.Equal(model.MatchStatusConfirmed, stored.Status)
}

func (s *StorageSuite) TestResolveMatchAbortLeavesNoPartialWrite() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Rating: 1600})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "bob", Rating: 1600})
	m, _ := s.storage.CreateMatch(s.ctx, &model.Match{Player1: "alice", Player2: "bob"})

	err := s.storage.ResolveMatch(s.ctx, m.ID, func(m *model.Match, players map[string]*model.Player) error {
		players["alice"].Rating = 9999
		m.Status = model.MatchStatusConfirmed
		return model.ErrUnauthorizedConfirmer
	})
	s.ErrorIs(err, model.ErrUnauthorizedConfirmer)

	alice, _ := s.storage.GetPlayer(s.ctx, "alice")
	stored, _ := s.storage.GetMatch(s.ctx, m.ID)
	s.Equal(1600, alice.Rating)
	s.Equal(model.MatchStatusPending, stored.Status)
}

func (s *StorageSuite) TestResolveMatchRejectsTerminalMatch() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "bob"})
	m, _ := s.storage.CreateMatch(s.ctx, &model.Match{Player1: "alice", Player2: "bob"})

	err := s.storage.ResolveMatch(s.ctx, m.ID, func(m *model.Match, players map[string]*model.Player) error {
		m.Status = model.MatchStatusDenied
		return nil
	})
	s.Require().NoError(err)

	err = s.storage.ResolveMatch(s.ctx, m.ID, func(m *model.Match, players map[string]*model.Player) error {
		s.Fail("resolve func should not run for a terminal match")
		return nil
	})
	s.ErrorIs(err, model.ErrMatchAlreadyResolved)
}

func (s *StorageSuite) TestResolveMatchConflictingPlayerWrite() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Rating: 1600})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "bob", Rating: 1600})
	m, _ := s.storage.CreateMatch(s.ctx, &model.Match{Player1: "alice", Player2: "bob"})

	// A second connection writes a watched player key while the resolution
	// is in flight, invalidating the transaction
	other := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	defer func() { _ = other.Close() }()

	err := s.storage.ResolveMatch(s.ctx, m.ID, func(m *model.Match, players map[string]*model.Player) error {
		raced := *players["alice"]
		raced.Rating = 1700
		data, err := json.Marshal(&raced)
		if err != nil {
			return err
		}
		if err := other.Set(s.ctx, playerKey("alice"), data, 0).Err(); err != nil {
			return err
		}

		players["alice"].Rating = 1633
		players["bob"].Rating = 1567
		m.Status = model.MatchStatusConfirmed
		return nil
	})
	s.ErrorIs(err, model.ErrConcurrentUpdate)

	// The transaction was discarded wholesale: the racing write survives,
	// nothing from the aborted resolution does
	stored, _ := s.storage.GetMatch(s.ctx, m.ID)
	s.Equal(model.MatchStatusPending, stored.Status)

	alice, _ := s.storage.GetPlayer(s.ctx, "alice")
	s.Equal(1700, alice.Rating)
	bob, _ := s.storage.GetPlayer(s.ctx, "bob")
	s.Equal(1600, bob.Rating)
}

func (s *StorageSuite) TestResolveMatchRacedByOtherResolution() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice", Rating: 1600})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "bob", Rating: 1600})
	m, _ := s.storage.CreateMatch(s.ctx, &model.Match{Player1: "alice", Player2: "bob"})

	other := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	defer func() { _ = other.Close() }()

	// A racing resolution lands first: the match key itself goes terminal
	// under our WATCH, so the conflict reads as an already-resolved match
	err := s.storage.ResolveMatch(s.ctx, m.ID, func(match *model.Match, players map[string]*model.Player) error {
		resolved := *match
		resolved.Status = model.MatchStatusConfirmed
		data, err := json.Marshal(&resolved)
		if err != nil {
			return err
		}
		if err := other.Set(s.ctx, matchKey(m.ID), data, 0).Err(); err != nil {
			return err
		}

		match.Status = model.MatchStatusDenied
		return nil
	})
	s.ErrorIs(err, model.ErrMatchAlreadyResolved)

	stored, _ := s.storage.GetMatch(s.ctx, m.ID)
	s.Equal(model.MatchStatusConfirmed, stored.Status)
}

func (s *StorageSuite) TestResolveMatchUnknownMatch() {
	err := s.storage.ResolveMatch(s.ctx, 42, func(m *model.Match, players map[string]*model.Player) error {
		return nil
	})
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestResolveMatchMissingPlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "alice"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{Name: "bob"})
	m, _ := s.storage.CreateMatch(s.ctx, &model.Match{Player1: "alice", Player2: "bob"})
	_ = s.storage.DeletePlayer(s.ctx, "bob")

	err := s.storage.ResolveMatch(s.ctx, m.ID, func(m *model.Match, players map[string]*model.Player) error {
		return nil
	})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}
