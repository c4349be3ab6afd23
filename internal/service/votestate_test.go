package service

import (
	"context"
	"testing"

	"github.com/joebaillie21/daycipe.io/internal/model"
)

func TestMemoryVoteState_DefaultsToNone(t *testing.T) {
	state := NewMemoryVoteState()

	dir, err := state.Get(context.Background(), "voter-a", model.KindFact, 1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if dir != DirNone {
		t.Errorf("unset vote = %s, want none", dir)
	}
}

func TestMemoryVoteState_SetGetClear(t *testing.T) {
	state := NewMemoryVoteState()
	ctx := context.Background()

	if err := state.Set(ctx, "voter-a", model.KindFact, 1, DirUp); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	dir, err := state.Get(ctx, "voter-a", model.KindFact, 1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if dir != DirUp {
		t.Errorf("vote = %s, want up", dir)
	}

	if err := state.Clear(ctx, "voter-a", model.KindFact, 1); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	dir, err = state.Get(ctx, "voter-a", model.KindFact, 1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if dir != DirNone {
		t.Errorf("cleared vote = %s, want none", dir)
	}
}

func TestMemoryVoteState_KeysAreScoped(t *testing.T) {
	state := NewMemoryVoteState()
	ctx := context.Background()

	if err := state.Set(ctx, "voter-a", model.KindFact, 1, DirUp); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Same id, different kind and different voter stay independent.
	checks := []struct {
		voter string
		kind  model.Kind
		id    int64
	}{
		{"voter-a", model.KindJoke, 1},
		{"voter-a", model.KindFact, 2},
		{"voter-b", model.KindFact, 1},
	}
	for _, check := range checks {
		dir, err := state.Get(ctx, check.voter, check.kind, check.id)
		if err != nil {
			t.Fatalf("Get error: %v", err)
		}
		if dir != DirNone {
			t.Errorf("vote(%s, %s, %d) = %s, want none", check.voter, check.kind, check.id, dir)
		}
	}
}
