package service

import (
	"context"
	"errors"
	"testing"

	"github.com/joebaillie21/daycipe.io/internal/model"
	"github.com/joebaillie21/daycipe.io/internal/policy"
)

// fakeStore applies vote deltas in memory, mirroring the repository's
// single-transaction score+visibility write.
type fakeStore struct {
	scores map[int64]int
}

func newFakeStore(ids ...int64) *fakeStore {
	s := &fakeStore{scores: make(map[int64]int)}
	for _, id := range ids {
		s.scores[id] = 0
	}
	return s
}

func (s *fakeStore) ApplyVoteDelta(ctx context.Context, kind model.Kind, id int64, delta, threshold int) (int, bool, error) {
	score, ok := s.scores[id]
	if !ok {
		return 0, false, model.ErrNotFound
	}
	score += delta
	s.scores[id] = score
	return score, score >= threshold, nil
}

func newTestVoteService(store ContentStore) *VoteService {
	return NewVoteService(store, policy.Default(), nil, NewMemoryVoteState())
}

func TestUpvote_IncrementsByOne(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestVoteService(store)

	result, err := svc.Upvote(context.Background(), model.KindFact, 1)
	if err != nil {
		t.Fatalf("Upvote error: %v", err)
	}
	if result.NewScore != 1 {
		t.Errorf("newScore = %d, want 1", result.NewScore)
	}
	if !result.IsShown {
		t.Errorf("isShown = false, want true")
	}
}

func TestDownvote_SequenceCrossesThreshold(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestVoteService(store)

	// Six downvotes from 0: scores -1..-6, shown through -5, hidden at -6.
	wantScores := []int{-1, -2, -3, -4, -5, -6}
	wantShown := []bool{true, true, true, true, true, false}

	for i := range wantScores {
		result, err := svc.Downvote(context.Background(), model.KindFact, 1)
		if err != nil {
			t.Fatalf("Downvote #%d error: %v", i+1, err)
		}
		if result.NewScore != wantScores[i] {
			t.Errorf("Downvote #%d newScore = %d, want %d", i+1, result.NewScore, wantScores[i])
		}
		if result.IsShown != wantShown[i] {
			t.Errorf("Downvote #%d isShown = %v, want %v", i+1, result.IsShown, wantShown[i])
		}
	}
}

func TestVote_NetSumOfDeltas(t *testing.T) {
	store := newFakeStore(7)
	svc := newTestVoteService(store)
	ctx := context.Background()

	// +1 +1 -1 +1 -1 -1 -1 = -1
	calls := []func(context.Context, model.Kind, int64) (*model.VoteResult, error){
		svc.Upvote, svc.Upvote, svc.Downvote, svc.Upvote, svc.Downvote, svc.Downvote, svc.Downvote,
	}
	var last *model.VoteResult
	var err error
	for _, call := range calls {
		last, err = call(ctx, model.KindJoke, 7)
		if err != nil {
			t.Fatalf("vote error: %v", err)
		}
	}
	if last.NewScore != -1 {
		t.Errorf("final score = %d, want -1", last.NewScore)
	}
	if !last.IsShown {
		t.Errorf("isShown = false, want true (score -1 above threshold)")
	}
}

func TestVote_NotFound(t *testing.T) {
	svc := newTestVoteService(newFakeStore())

	_, err := svc.Upvote(context.Background(), model.KindFact, 42)
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Upvote on missing item error = %v, want ErrNotFound", err)
	}
}

func TestVote_UnknownKindWritesNothing(t *testing.T) {
	store := newFakeStore(1)
	svc := newTestVoteService(store)

	_, err := svc.Upvote(context.Background(), model.Kind("haiku"), 1)
	if !errors.Is(err, policy.ErrUnknownKind) {
		t.Fatalf("error = %v, want ErrUnknownKind", err)
	}
	if store.scores[1] != 0 {
		t.Errorf("score mutated to %d on unknown kind, want 0", store.scores[1])
	}
}

func TestTransition_Table(t *testing.T) {
	tests := []struct {
		current   Direction
		desired   Direction
		wantDelta int
		wantNext  Direction
	}{
		{DirNone, DirUp, +1, DirUp},
		{DirNone, DirDown, -1, DirDown},
		{DirUp, DirUp, -1, DirNone},
		{DirDown, DirDown, +1, DirNone},
		{DirUp, DirDown, -2, DirDown},
		{DirDown, DirUp, +2, DirUp},
	}

	for _, tt := range tests {
		delta, next, err := transition(tt.current, tt.desired)
		if err != nil {
			t.Fatalf("transition(%s, %s) error: %v", tt.current, tt.desired, err)
		}
		if delta != tt.wantDelta || next != tt.wantNext {
			t.Errorf("transition(%s, %s) = (%d, %s), want (%d, %s)",
				tt.current, tt.desired, delta, next, tt.wantDelta, tt.wantNext)
		}
	}
}

func TestTransition_RejectsInvalidDirection(t *testing.T) {
	_, _, err := transition(DirNone, Direction("sideways"))
	if !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("transition with bad direction error = %v, want ErrInvalidArgument", err)
	}
	_, _, err = transition(DirNone, DirNone)
	if !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("transition to none error = %v, want ErrInvalidArgument", err)
	}
}

func TestToggle_RoundTripRestoresInitialState(t *testing.T) {
	store := newFakeStore(3)
	svc := newTestVoteService(store)
	ctx := context.Background()

	// None → Up
	result, state, err := svc.Toggle(ctx, model.KindFact, 3, "voter-a", DirUp)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if result.NewScore != 1 || state != DirUp {
		t.Errorf("after first up: score=%d state=%s, want 1/up", result.NewScore, state)
	}

	// Up → Up again undoes
	result, state, err = svc.Toggle(ctx, model.KindFact, 3, "voter-a", DirUp)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if result.NewScore != 0 || state != DirNone {
		t.Errorf("after repeat up: score=%d state=%s, want 0/none", result.NewScore, state)
	}
}

func TestToggle_SwitchAppliesSingleDoubleDelta(t *testing.T) {
	store := newFakeStore(3)
	svc := newTestVoteService(store)
	ctx := context.Background()

	if _, _, err := svc.Toggle(ctx, model.KindRecipe, 3, "voter-b", DirUp); err != nil {
		t.Fatalf("Toggle error: %v", err)
	}

	// Up → Down: net delta -2 in one call.
	result, state, err := svc.Toggle(ctx, model.KindRecipe, 3, "voter-b", DirDown)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if result.NewScore != -1 {
		t.Errorf("score after switch = %d, want -1", result.NewScore)
	}
	if state != DirDown {
		t.Errorf("state after switch = %s, want down", state)
	}

	// Down → Up: net delta +2 back.
	result, state, err = svc.Toggle(ctx, model.KindRecipe, 3, "voter-b", DirUp)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if result.NewScore != 1 || state != DirUp {
		t.Errorf("score/state after switch back = %d/%s, want 1/up", result.NewScore, state)
	}
}

func TestToggle_VotersAreIndependent(t *testing.T) {
	store := newFakeStore(9)
	svc := newTestVoteService(store)
	ctx := context.Background()

	if _, _, err := svc.Toggle(ctx, model.KindJoke, 9, "voter-a", DirUp); err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	result, state, err := svc.Toggle(ctx, model.KindJoke, 9, "voter-b", DirUp)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if result.NewScore != 2 {
		t.Errorf("score after two voters = %d, want 2", result.NewScore)
	}
	if state != DirUp {
		t.Errorf("voter-b state = %s, want up", state)
	}
}
