package sortedstorage

import (
	"context"

	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const leaderboardKeyPrefix = "leaderboard:"

var _ i.Leaderboard = &RedisLeaderboard{}

// RedisLeaderboard ranks training runs per maze in a Redis sorted set scored by final moves.
type RedisLeaderboard struct {
	client *redis.Client
}

// NewRedisLeaderboard initializes a RedisLeaderboard with the provided Redis client.
func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{client: client}
}

// Record adds a run to the leaderboard of its maze.
func (rl *RedisLeaderboard) Record(ctx context.Context, mazeID, runID uuid.UUID, moves int) error {
	return rl.client.ZAdd(ctx, leaderboardKey(mazeID), redis.Z{Score: float64(moves), Member: runID.String()}).Err()
}

// Best returns up to n runs with the fewest final moves.
func (rl *RedisLeaderboard) Best(ctx context.Context, mazeID uuid.UUID, n int64) ([]i.LeaderboardEntry, error) {
	if n <= 0 {
		return []i.LeaderboardEntry{}, nil
	}

	members, err := rl.client.ZRangeWithScores(ctx, leaderboardKey(mazeID), 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]i.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		member, ok := m.Member.(string)
		if !ok {
			continue
		}
		runID, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		entries = append(entries, i.LeaderboardEntry{RunID: runID, Moves: int(m.Score)})
	}

	return entries, nil
}

func leaderboardKey(mazeID uuid.UUID) string {
	return leaderboardKeyPrefix + mazeID.String()
}
