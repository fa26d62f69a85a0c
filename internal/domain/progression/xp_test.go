package progression_test

import (
	"errors"
	"testing"

	"github.com/prepwise/backend/internal/domain/progression"
)

func TestCalculateXP_Reward(t *testing.T) {
	result, err := progression.CalculateXP(8, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// round(5 * 5 * 0.8) = 20
	if result.EarnedXP != 20 {
		t.Errorf("expected 20 XP, got %d", result.EarnedXP)
	}
	if !result.Rewarded {
		t.Error("expected reward branch")
	}
}

func TestCalculateXP_Penalty(t *testing.T) {
	result, err := progression.CalculateXP(2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// -round(3 * 5 * (4-2)/4) = -8
	if result.EarnedXP != -8 {
		t.Errorf("expected -8 XP, got %d", result.EarnedXP)
	}
	if result.Rewarded {
		t.Error("expected penalty branch")
	}
}

func TestCalculateXP_ThresholdBoundary(t *testing.T) {
	// Exactly at the threshold is the reward side.
	atThreshold, err := progression.CalculateXP(4, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atThreshold.EarnedXP <= 0 {
		t.Errorf("score 4 should earn positive XP, got %d", atThreshold.EarnedXP)
	}

	// Just below the threshold must be a non-zero penalty. The raw formula
	// rounds to zero here, so the penalty floor applies.
	below, err := progression.CalculateXP(3.999, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if below.EarnedXP != -1 {
		t.Errorf("score 3.999 should earn -1 XP, got %d", below.EarnedXP)
	}
	if below.Rewarded {
		t.Error("expected penalty branch")
	}
}

func TestCalculateXP_PenaltyFloor(t *testing.T) {
	// Every sub-threshold score costs at least one XP, even where the
	// rounded formula lands on zero.
	tests := []struct {
		score      float64
		difficulty int
	}{
		{3.999, 5},
		{3.9, 1},
		{3.5, 1},
	}
	for _, tt := range tests {
		result, err := progression.CalculateXP(tt.score, tt.difficulty)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.EarnedXP > -1 {
			t.Errorf("CalculateXP(%v, %d) = %d, want <= -1", tt.score, tt.difficulty, result.EarnedXP)
		}
	}
}

func TestCalculateXP_ScalesWithDifficulty(t *testing.T) {
	easy, _ := progression.CalculateXP(8, 2)
	hard, _ := progression.CalculateXP(8, 9)

	if hard.EarnedXP <= easy.EarnedXP {
		t.Errorf("harder question should earn more: easy=%d hard=%d", easy.EarnedXP, hard.EarnedXP)
	}
}

func TestCalculateXP_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		difficulty int
	}{
		{"score below range", -1, 5},
		{"score above range", 10.5, 5},
		{"difficulty zero", 5, 0},
		{"difficulty above range", 5, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := progression.CalculateXP(tt.score, tt.difficulty)
			if !errors.Is(err, progression.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
