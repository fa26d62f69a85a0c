package streak

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate guards against clock skew: a last-active date in the
// future, or a date that does not parse. The transition performs no
// mutation; callers log it as a warning and move on.
var ErrInvalidDate = errors.New("invalid date transition")

// DateLayout is the calendar-date format streaks are keyed on.
const DateLayout = "2006-01-02"

// Status describes the outcome of a streak evaluation.
type Status string

const (
	// StatusAlreadyActive: same calendar day, nothing changes.
	StatusAlreadyActive Status = "already-active-today"
	// StatusStarted: first activity ever recorded.
	StatusStarted Status = "started"
	// StatusContinued: exactly one day since last activity.
	StatusContinued Status = "continued"
	// StatusBroken: a gap of more than one day with no protection left.
	StatusBroken Status = "broken"
	// StatusProtected: a gap bridged by consuming one protection item.
	StatusProtected Status = "protected"
	// StatusInvalid: clock skew or unparseable date; no mutation.
	StatusInvalid Status = "invalid"
)

// Evaluation is the result of one streak transition.
type Evaluation struct {
	NewLength      int    `json:"new_length"`
	Status         Status `json:"status"`
	PreviousLength int    `json:"previous_length,omitempty"` // set when broken
	ProtectionUsed bool   `json:"protection_used"`
}

// Evaluate computes the streak transition from lastActive to today.
//
//	gap == 0  same day, idempotent
//	gap == 1  streak continues
//	gap  > 1  streak breaks, unless a protection item absorbs it
//	gap  < 0  invalid (clock skew); no mutation
//
// An empty lastActive means no activity was ever recorded and starts a new
// streak at 1. protections is the number of streak-protection items the
// user holds; at most one is consumed per transition.
func Evaluate(lastActive, today string, currentLength, protections int) (Evaluation, error) {
	todayDate, err := time.Parse(DateLayout, today)
	if err != nil {
		return Evaluation{Status: StatusInvalid, NewLength: currentLength},
			fmt.Errorf("%w: bad today %q", ErrInvalidDate, today)
	}

	if lastActive == "" {
		return Evaluation{Status: StatusStarted, NewLength: 1}, nil
	}

	lastDate, err := time.Parse(DateLayout, lastActive)
	if err != nil {
		return Evaluation{Status: StatusInvalid, NewLength: currentLength},
			fmt.Errorf("%w: bad last-active %q", ErrInvalidDate, lastActive)
	}

	gap := daysBetween(lastDate, todayDate)

	switch {
	case gap < 0:
		return Evaluation{Status: StatusInvalid, NewLength: currentLength},
			fmt.Errorf("%w: last-active %s is after today %s", ErrInvalidDate, lastActive, today)

	case gap == 0:
		return Evaluation{Status: StatusAlreadyActive, NewLength: currentLength}, nil

	case gap == 1:
		return Evaluation{Status: StatusContinued, NewLength: currentLength + 1}, nil

	default:
		if protections > 0 {
			// The missed days are forgiven; the streak continues as if
			// yesterday had been active.
			return Evaluation{
				Status:         StatusProtected,
				NewLength:      currentLength + 1,
				ProtectionUsed: true,
			}, nil
		}
		return Evaluation{
			Status:         StatusBroken,
			NewLength:      1,
			PreviousLength: currentLength,
		}, nil
	}
}

// daysBetween returns whole calendar days from a to b, negative when b is
// before a. Both inputs are already midnight-normalized by the date parse.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
