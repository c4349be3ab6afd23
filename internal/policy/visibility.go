package policy

import (
	"errors"
	"fmt"

	"github.com/joebaillie21/daycipe.io/internal/model"
)

// DefaultHideThreshold is the score floor applied to every kind unless
// overridden: an item is shown while score >= threshold.
const DefaultHideThreshold = -5

// ErrUnknownKind means an unrecognized content kind reached the policy.
// This is a programming error, not a user-facing condition.
var ErrUnknownKind = errors.New("unknown content kind")

// Policy maps each content kind to its hide threshold. It is pure
// configuration: construct once at startup (or per test) and inject.
type Policy struct {
	thresholds map[model.Kind]int
}

// New builds a Policy from an explicit threshold table. The map is
// copied; only recognized kinds may appear.
func New(thresholds map[model.Kind]int) (*Policy, error) {
	t := make(map[model.Kind]int, len(thresholds))
	for kind, threshold := range thresholds {
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		t[kind] = threshold
	}
	return &Policy{thresholds: t}, nil
}

// Default returns a Policy with every kind at DefaultHideThreshold.
func Default() *Policy {
	t := make(map[model.Kind]int, len(model.Kinds))
	for _, kind := range model.Kinds {
		t[kind] = DefaultHideThreshold
	}
	return &Policy{thresholds: t}
}

// Threshold returns the hide threshold for a kind.
func (p *Policy) Threshold(kind model.Kind) (int, error) {
	threshold, ok := p.thresholds[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return threshold, nil
}

// ShouldShow reports whether an item with the given score is visible.
// Pure and total over recognized kinds.
func (p *Policy) ShouldShow(kind model.Kind, score int) (bool, error) {
	threshold, err := p.Threshold(kind)
	if err != nil {
		return false, err
	}
	return score >= threshold, nil
}
