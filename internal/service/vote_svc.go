package service

import (
	"context"
	"fmt"
	"log"

	"github.com/joebaillie21/daycipe.io/internal/model"
	"github.com/joebaillie21/daycipe.io/internal/policy"
)

// ContentStore is the repository surface the vote coordinator needs:
// a single atomic score-delta-plus-visibility write.
type ContentStore interface {
	ApplyVoteDelta(ctx context.Context, kind model.Kind, id int64, delta, threshold int) (newScore int, isShown bool, err error)
}

// VoteService owns the vote state machine. The raw primitives adjust a
// score by exactly ±1; Toggle composes them into the None/Up/Down
// transition table using a VoteState store, collapsing a direction
// switch into one atomic ±2 write.
type VoteService struct {
	store  ContentStore
	policy *policy.Policy
	cache  *CacheService
	state  VoteState
}

func NewVoteService(store ContentStore, pol *policy.Policy, cache *CacheService, state VoteState) *VoteService {
	return &VoteService{store: store, policy: pol, cache: cache, state: state}
}

// Upvote atomically increments an item's score by 1 and re-derives its
// visibility.
func (s *VoteService) Upvote(ctx context.Context, kind model.Kind, id int64) (*model.VoteResult, error) {
	return s.apply(ctx, kind, id, +1)
}

// Downvote atomically decrements an item's score by 1 and re-derives
// its visibility.
func (s *VoteService) Downvote(ctx context.Context, kind model.Kind, id int64) (*model.VoteResult, error) {
	return s.apply(ctx, kind, id, -1)
}

// apply performs one atomic vote mutation. The threshold is resolved
// before any write, so an unrecognized kind aborts with nothing mutated.
func (s *VoteService) apply(ctx context.Context, kind model.Kind, id int64, delta int) (*model.VoteResult, error) {
	threshold, err := s.policy.Threshold(kind)
	if err != nil {
		return nil, err
	}

	newScore, shown, err := s.store.ApplyVoteDelta(ctx, kind, id, delta, threshold)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateKind(ctx, kind); err != nil {
			log.Printf("cache: invalidate %s error: %v", kind, err)
		}
	}

	return &model.VoteResult{ID: id, NewScore: newScore, IsShown: shown}, nil
}

// transition maps (current, desired) to the net score delta and the
// resulting direction. Repeating the current direction undoes it;
// switching directions applies undo and new vote as one delta of 2.
func transition(current, desired Direction) (int, Direction, error) {
	if desired != DirUp && desired != DirDown {
		return 0, DirNone, fmt.Errorf("%w: vote direction must be up or down", model.ErrInvalidArgument)
	}

	switch {
	case current == desired && desired == DirUp:
		return -1, DirNone, nil
	case current == desired && desired == DirDown:
		return +1, DirNone, nil
	case current == DirUp && desired == DirDown:
		return -2, DirDown, nil
	case current == DirDown && desired == DirUp:
		return +2, DirUp, nil
	case desired == DirUp:
		return +1, DirUp, nil
	default:
		return -1, DirDown, nil
	}
}

// Toggle drives the per-(voter, item) state machine server-side. It
// reads the voter's current direction from the VoteState store, applies
// the whole transition as a single atomic delta, then records the new
// direction. The score write and the state write are not one
// transaction; a crash in between leaves the score applied and the
// state stale, which the next toggle self-corrects in reverse.
func (s *VoteService) Toggle(ctx context.Context, kind model.Kind, id int64, voter string, desired Direction) (*model.VoteResult, Direction, error) {
	current, err := s.state.Get(ctx, voter, kind, id)
	if err != nil {
		return nil, DirNone, err
	}

	delta, next, err := transition(current, desired)
	if err != nil {
		return nil, DirNone, err
	}

	result, err := s.apply(ctx, kind, id, delta)
	if err != nil {
		return nil, DirNone, err
	}

	if next == DirNone {
		err = s.state.Clear(ctx, voter, kind, id)
	} else {
		err = s.state.Set(ctx, voter, kind, id, next)
	}
	if err != nil {
		return nil, DirNone, err
	}

	return result, next, nil
}
