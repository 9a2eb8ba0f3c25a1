package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pongelo/pongelo/internal/model"
	"github.com/pongelo/pongelo/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.Name)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}

	// Pipeline keeps the insertion-order index in step with the value
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	if exists == 0 {
		pipe.RPush(ctx, playersIndexKey(), player.Name)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(name))
	pipe.LRem(ctx, playersIndexKey(), 0, name)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	names, err := s.client.LRange(ctx, playersIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = playerKey(name)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // index entry outlived the value
		}
		var player model.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	return players, nil
}

// Match operations

func (s *Storage) CreateMatch(ctx context.Context, match *model.Match) (*model.Match, error) {
	id, err := s.client.Incr(ctx, matchIDCounterKey()).Result()
	if err != nil {
		return nil, err
	}

	m := *match
	m.ID = model.MatchID(id)
	m.Status = model.MatchStatusPending

	data, err := json.Marshal(&m)
	if err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, matchKey(m.ID), data, 0)
	pipe.RPush(ctx, matchesIndexKey(), int64(m.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return &m, nil
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return s.getMatch(ctx, s.client, id)
}

func (s *Storage) ListMatches(ctx context.Context, status model.MatchStatus) ([]*model.Match, error) {
	ids, err := s.client.LRange(ctx, matchesIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		keys[i] = matchKey(model.MatchID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	matches := make([]*model.Match, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var match model.Match
		if err := json.Unmarshal([]byte(raw), &match); err != nil {
			return nil, err
		}
		if status != "" && match.Status != status {
			continue
		}
		matches = append(matches, &match)
	}
	return matches, nil
}

// ResolveMatch uses WATCH on the match and both player keys so the terminal
// transition and both rating writes commit only if nothing raced them.
func (s *Storage) ResolveMatch(ctx context.Context, id model.MatchID, resolve storage.ResolveFunc) error {
	// First read locates the two player keys to watch
	current, err := s.GetMatch(ctx, id)
	if err != nil {
		return err
	}

	mKey := matchKey(id)
	p1Key := playerKey(current.Player1)
	p2Key := playerKey(current.Player2)

	txf := func(tx *redis.Tx) error {
		match, err := s.getMatch(ctx, tx, id)
		if err != nil {
			return err
		}
		if match.Status.Terminal() {
			return model.ErrMatchAlreadyResolved
		}

		p1, err := s.getPlayerTx(ctx, tx, match.Player1)
		if err != nil {
			return err
		}
		p2, err := s.getPlayerTx(ctx, tx, match.Player2)
		if err != nil {
			return err
		}

		if err := resolve(match, map[string]*model.Player{
			p1.Name: p1,
			p2.Name: p2,
		}); err != nil {
			return err
		}

		matchData, err := json.Marshal(match)
		if err != nil {
			return err
		}
		p1Data, err := json.Marshal(p1)
		if err != nil {
			return err
		}
		p2Data, err := json.Marshal(p2)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, mKey, matchData, 0)
			pipe.Set(ctx, p1Key, p1Data, 0)
			pipe.Set(ctx, p2Key, p2Data, 0)
			return nil
		})
		return err
	}

	err = s.client.Watch(ctx, txf, mKey, p1Key, p2Key)
	if errors.Is(err, redis.TxFailedErr) {
		// A watched key changed under us. No retry here: the caller
		// re-drives the operation against fresh state (or learns the
		// match was resolved by the racing call).
		match, getErr := s.GetMatch(ctx, id)
		if getErr == nil && match.Status.Terminal() {
			return model.ErrMatchAlreadyResolved
		}
		return model.ErrConcurrentUpdate
	}
	return err
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *Storage) getMatch(ctx context.Context, c redisGetter, id model.MatchID) (*model.Match, error) {
	data, err := c.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) getPlayerTx(ctx context.Context, tx *redis.Tx, name string) (*model.Player, error) {
	data, err := tx.Get(ctx, playerKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}
