package redis

import (
	"fmt"

	"github.com/pongelo/pongelo/internal/model"
)

// Key prefix for all ladder data
const keyPrefix = "pongelo"

// playerKey returns the Redis key for a Player
func playerKey(name string) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, name)
}

// playersIndexKey returns the Redis key for the insertion-ordered player name list
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%d", keyPrefix, id)
}

// matchIDCounterKey returns the Redis key for the match ID counter
func matchIDCounterKey() string {
	return fmt.Sprintf("%s:match_id", keyPrefix)
}

// matchesIndexKey returns the Redis key for the creation-ordered match ID list
func matchesIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", keyPrefix)
}
