package service

import (
	"errors"
	"testing"
	"time"

	"github.com/joebaillie21/daycipe.io/internal/model"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidateRange_EndDefaultsToStart(t *testing.T) {
	start, end, err := validateRange(day("2024-01-05"), time.Time{})
	if err != nil {
		t.Fatalf("validateRange error: %v", err)
	}
	if !start.Equal(day("2024-01-05")) || !end.Equal(day("2024-01-05")) {
		t.Errorf("range = [%s, %s], want single day 2024-01-05", start, end)
	}
}

func TestValidateRange_InclusiveOrderAccepted(t *testing.T) {
	_, _, err := validateRange(day("2024-01-01"), day("2024-01-05"))
	if err != nil {
		t.Errorf("validateRange(01-01, 01-05) error: %v", err)
	}
	// Same-day range is valid.
	_, _, err = validateRange(day("2024-01-01"), day("2024-01-01"))
	if err != nil {
		t.Errorf("validateRange(01-01, 01-01) error: %v", err)
	}
}

func TestValidateRange_RejectsInvertedRange(t *testing.T) {
	_, _, err := validateRange(day("2024-01-05"), day("2024-01-01"))
	if !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("validateRange(01-05, 01-01) error = %v, want ErrInvalidArgument", err)
	}
}
