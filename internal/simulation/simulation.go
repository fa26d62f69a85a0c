// simulation/simulation.go
package simulation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/prepwise/backend/internal/domain/catalog"
	"github.com/prepwise/backend/internal/domain/selection"
	"github.com/prepwise/backend/internal/scorer"
	"github.com/prepwise/backend/internal/service"
	"github.com/prepwise/backend/internal/store"
	"github.com/prepwise/backend/internal/worker"
)

// candidate is one simulated user with a fixed skill level.
type candidate struct {
	name  string
	skill float64
}

var roster = []candidate{
	{"ada", 8.5},
	{"brendan", 7.0},
	{"grace", 9.0},
	{"linus", 6.0},
	{"rob", 7.5},
	{"ken", 5.5},
}

type runSummary struct {
	Name         string
	Attempts     int
	CumulativeXP int
	FinalTier    catalog.Tier
	Err          error
}

// Run drives the whole roster through multi-day practice runs concurrently
// and prints the resulting leaderboard. It exercises the same service layer
// the HTTP API uses, with a deterministic scorer instead of the LLM.
func Run(logger *slog.Logger, days, attemptsPerDay int) error {
	c, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	mem := store.NewMemory()
	pool := worker.NewPool[runSummary](3, len(roster))

	for _, cand := range roster {
		cand := cand
		pool.Submit(cand.name, func() runSummary {
			svc := service.NewSessionService(
				mem,
				scorer.NewHeuristicScorer(c, cand.skill),
				c,
				selection.New(c, rand.New(rand.NewSource(int64(len(cand.name))))),
				logger,
			)
			return simulateRun(svc, cand.name, days, attemptsPerDay)
		})
	}
	pool.Close()

	for result := range pool.Results() {
		if result.Output.Err != nil {
			logger.Error("simulated run failed", "user", result.JobID, "error", result.Output.Err)
			continue
		}
		s := result.Output
		logger.Info("run complete",
			"user", s.Name, "attempts", s.Attempts, "xp", s.CumulativeXP, "tier", s.FinalTier)
	}

	// Any service instance over the shared store sees every user.
	svc := service.NewSessionService(mem, scorer.NewHeuristicScorer(c, 5), c, selection.New(c, nil), logger)
	entries, err := svc.Leaderboard(context.Background(), false)
	if err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}

	fmt.Println("\n=== Leaderboard ===")
	for _, e := range entries {
		fmt.Printf("%2d. %-10s %5d XP  (form %d, %d attempts)\n",
			e.Rank, e.UserKey, e.CumulativeXP, e.RecentRating, e.Attempts)
	}
	return nil
}

// simulateRun plays one candidate through the given number of practice days.
func simulateRun(svc *service.SessionService, name string, days, attemptsPerDay int) runSummary {
	ctx := context.Background()
	summary := runSummary{Name: name}
	day := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	for d := 0; d < days; d++ {
		for a := 0; a < attemptsPerDay; a++ {
			next, err := svc.NextQuestion(ctx, name, "")
			if errors.Is(err, selection.ErrAllTiersExhausted) {
				break
			}
			if err != nil {
				summary.Err = err
				return summary
			}

			answer := fmt.Sprintf("%s answers question %d on day %d", name, next.Question.ID, d)
			outcome, err := svc.SubmitAnswer(ctx, name, next.Question.ID, answer, day)
			if err != nil {
				summary.Err = err
				return summary
			}
			summary.Attempts++
			summary.CumulativeXP = outcome.CumulativeXP
		}
		day = day.AddDate(0, 0, 1)
	}

	overview, err := svc.Progress(ctx, name)
	if err != nil {
		summary.Err = err
		return summary
	}
	summary.FinalTier = overview.CurrentTier
	return summary
}
