package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joebaillie21/daycipe.io/internal/model"
)

// Direction is a voter's recorded position on one item.
type Direction string

const (
	DirNone Direction = "none"
	DirUp   Direction = "up"
	DirDown Direction = "down"
)

// VoteState remembers one voter's current direction per item. The
// reference client keeps this state browser-side; this interface exists
// so a server-side ledger can back the Toggle wrapper without touching
// the vote primitives.
type VoteState interface {
	Get(ctx context.Context, voter string, kind model.Kind, id int64) (Direction, error)
	Set(ctx context.Context, voter string, kind model.Kind, id int64, dir Direction) error
	Clear(ctx context.Context, voter string, kind model.Kind, id int64) error
}

// MemoryVoteState is a process-local VoteState for tests and single-node
// deployments.
type MemoryVoteState struct {
	mu    sync.RWMutex
	votes map[string]Direction
}

func NewMemoryVoteState() *MemoryVoteState {
	return &MemoryVoteState{votes: make(map[string]Direction)}
}

func (m *MemoryVoteState) Get(ctx context.Context, voter string, kind model.Kind, id int64) (Direction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if dir, ok := m.votes[voteKey(voter, kind, id)]; ok {
		return dir, nil
	}
	return DirNone, nil
}

func (m *MemoryVoteState) Set(ctx context.Context, voter string, kind model.Kind, id int64, dir Direction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.votes[voteKey(voter, kind, id)] = dir
	return nil
}

func (m *MemoryVoteState) Clear(ctx context.Context, voter string, kind model.Kind, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.votes, voteKey(voter, kind, id))
	return nil
}

// RedisVoteState keeps vote state in Redis so toggle semantics survive
// process restarts. Entries expire after a year of inactivity.
type RedisVoteState struct {
	rdb *redis.Client
}

const voteStateTTL = 365 * 24 * time.Hour

func NewRedisVoteState(rdb *redis.Client) *RedisVoteState {
	return &RedisVoteState{rdb: rdb}
}

func (r *RedisVoteState) Get(ctx context.Context, voter string, kind model.Kind, id int64) (Direction, error) {
	val, err := r.rdb.Get(ctx, voteKey(voter, kind, id)).Result()
	if err == redis.Nil {
		return DirNone, nil
	}
	if err != nil {
		return DirNone, err
	}
	return Direction(val), nil
}

func (r *RedisVoteState) Set(ctx context.Context, voter string, kind model.Kind, id int64, dir Direction) error {
	return r.rdb.Set(ctx, voteKey(voter, kind, id), string(dir), voteStateTTL).Err()
}

func (r *RedisVoteState) Clear(ctx context.Context, voter string, kind model.Kind, id int64) error {
	return r.rdb.Del(ctx, voteKey(voter, kind, id)).Err()
}

func voteKey(voter string, kind model.Kind, id int64) string {
	return fmt.Sprintf("vote:%s:%s:%d", voter, kind, id)
}
