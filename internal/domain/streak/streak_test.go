package streak_test

import (
	"errors"
	"testing"

	"github.com/prepwise/backend/internal/domain/streak"
)

func TestEvaluate_SameDayIdempotent(t *testing.T) {
	for i := 0; i < 2; i++ {
		eval, err := streak.Evaluate("2024-01-10", "2024-01-10", 5, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if eval.Status != streak.StatusAlreadyActive {
			t.Errorf("call %d: expected already-active-today, got %s", i, eval.Status)
		}
		if eval.NewLength != 5 {
			t.Errorf("call %d: length must be unchanged, got %d", i, eval.NewLength)
		}
	}
}

func TestEvaluate_Continued(t *testing.T) {
	eval, err := streak.Evaluate("2024-01-10", "2024-01-11", 5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.Status != streak.StatusContinued {
		t.Errorf("expected continued, got %s", eval.Status)
	}
	if eval.NewLength != 6 {
		t.Errorf("expected length 6, got %d", eval.NewLength)
	}
}

func TestEvaluate_Broken(t *testing.T) {
	eval, err := streak.Evaluate("2024-01-01", "2024-01-05", 7, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.Status != streak.StatusBroken {
		t.Errorf("expected broken, got %s", eval.Status)
	}
	if eval.NewLength != 1 {
		t.Errorf("expected length reset to 1, got %d", eval.NewLength)
	}
	if eval.PreviousLength != 7 {
		t.Errorf("expected previous length 7, got %d", eval.PreviousLength)
	}
}

func TestEvaluate_Protected(t *testing.T) {
	eval, err := streak.Evaluate("2024-01-01", "2024-01-05", 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.Status != streak.StatusProtected {
		t.Errorf("expected protected, got %s", eval.Status)
	}
	if eval.NewLength != 8 {
		t.Errorf("expected length 8, got %d", eval.NewLength)
	}
	if !eval.ProtectionUsed {
		t.Error("expected exactly one protection item to be consumed")
	}
}

func TestEvaluate_FirstActivity(t *testing.T) {
	eval, err := streak.Evaluate("", "2024-01-10", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if eval.Status != streak.StatusStarted {
		t.Errorf("expected started, got %s", eval.Status)
	}
	if eval.NewLength != 1 {
		t.Errorf("expected length 1, got %d", eval.NewLength)
	}
}

func TestEvaluate_FutureLastActive(t *testing.T) {
	eval, err := streak.Evaluate("2024-01-10", "2024-01-05", 5, 0)

	if !errors.Is(err, streak.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	if eval.Status != streak.StatusInvalid {
		t.Errorf("expected invalid status, got %s", eval.Status)
	}
	if eval.NewLength != 5 {
		t.Errorf("invalid transition must not mutate length, got %d", eval.NewLength)
	}
}

func TestEvaluate_UnparseableDate(t *testing.T) {
	_, err := streak.Evaluate("not-a-date", "2024-01-05", 5, 0)
	if !errors.Is(err, streak.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestNextMilestone(t *testing.T) {
	tests := []struct {
		current int
		days    int
		ok      bool
	}{
		{0, 3, true},
		{2, 3, true},
		{3, 7, true},
		{13, 14, true},
		{29, 30, true},
		{30, 0, false},
		{100, 0, false},
	}

	for _, tt := range tests {
		m, ok := streak.NextMilestone(tt.current)
		if ok != tt.ok {
			t.Errorf("NextMilestone(%d) ok = %v, want %v", tt.current, ok, tt.ok)
			continue
		}
		if ok && m.Days != tt.days {
			t.Errorf("NextMilestone(%d) = %d days, want %d", tt.current, m.Days, tt.days)
		}
	}
}

func TestCrossed(t *testing.T) {
	m, ok := streak.Crossed(6, 7)
	if !ok || m.Days != 7 {
		t.Errorf("expected 7-day milestone crossing, got %v %v", m, ok)
	}

	if _, ok := streak.Crossed(7, 8); ok {
		t.Error("no milestone should be crossed from 7 to 8")
	}

	// A break back to 1 crosses nothing.
	if _, ok := streak.Crossed(14, 1); ok {
		t.Error("a streak break must not cross milestones")
	}
}
