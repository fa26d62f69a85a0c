package catalog_test

import (
	"testing"

	"github.com/prepwise/backend/internal/domain/catalog"
)

func validMapping() map[string]string {
	return map[string]string{
		"big-o":   "algorithms",
		"caching": "system-design",
	}
}

func TestLoad_BundledCatalog(t *testing.T) {
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Len() == 0 {
		t.Fatal("expected bundled catalog to have questions")
	}

	// Every tier partition must be non-empty, otherwise tier advancement
	// would skip straight to exhaustion.
	for _, tier := range catalog.TierOrder() {
		if c.TierSize(tier) == 0 {
			t.Errorf("tier %s has no questions", tier)
		}
	}
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	questions := []catalog.Question{
		{ID: 1, Text: "a", Difficulty: 3, Tier: catalog.TierJunior, KeyPoints: []string{"big-o"}},
		{ID: 1, Text: "b", Difficulty: 3, Tier: catalog.TierJunior, KeyPoints: []string{"big-o"}},
	}

	if _, err := catalog.New(questions, validMapping()); err == nil {
		t.Error("expected error for duplicate question IDs")
	}
}

func TestNew_RejectsBadDifficulty(t *testing.T) {
	for _, difficulty := range []int{0, -1, 11} {
		questions := []catalog.Question{
			{ID: 1, Text: "a", Difficulty: difficulty, Tier: catalog.TierJunior, KeyPoints: []string{"big-o"}},
		}
		if _, err := catalog.New(questions, validMapping()); err == nil {
			t.Errorf("expected error for difficulty %d", difficulty)
		}
	}
}

func TestNew_RejectsUnmappedKeyPoint(t *testing.T) {
	questions := []catalog.Question{
		{ID: 1, Text: "a", Difficulty: 3, Tier: catalog.TierJunior, KeyPoints: []string{"mystery-topic"}},
	}

	if _, err := catalog.New(questions, validMapping()); err == nil {
		t.Error("expected error for key point without category mapping")
	}
}

func TestNew_RejectsTierAllOnQuestion(t *testing.T) {
	questions := []catalog.Question{
		{ID: 1, Text: "a", Difficulty: 3, Tier: catalog.TierAll, KeyPoints: []string{"big-o"}},
	}

	if _, err := catalog.New(questions, validMapping()); err == nil {
		t.Error("expected error: 'all' is a filter, not a partition")
	}
}

func TestInTier_AllMatchesEverything(t *testing.T) {
	c, err := catalog.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(c.InTier(catalog.TierAll)); got != c.Len() {
		t.Errorf("expected TierAll to cover %d questions, got %d", c.Len(), got)
	}
}

func TestCategoriesOf_Deduplicates(t *testing.T) {
	mapping := map[string]string{
		"big-o":   "algorithms",
		"sorting": "algorithms",
	}
	questions := []catalog.Question{
		{ID: 1, Text: "a", Difficulty: 3, Tier: catalog.TierJunior, KeyPoints: []string{"big-o", "sorting"}},
	}

	c, err := catalog.New(questions, mapping)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, _ := c.Question(1)
	cats := c.CategoriesOf(q)
	if len(cats) != 1 || cats[0] != "algorithms" {
		t.Errorf("expected single category 'algorithms', got %v", cats)
	}
}

func TestTierNext(t *testing.T) {
	tests := []struct {
		tier catalog.Tier
		next catalog.Tier
		ok   bool
	}{
		{catalog.TierJunior, catalog.TierMid, true},
		{catalog.TierMid, catalog.TierSenior, true},
		{catalog.TierSenior, catalog.TierStaff, true},
		{catalog.TierStaff, "", false},
		{catalog.TierAll, "", false},
	}

	for _, tt := range tests {
		next, ok := tt.tier.Next()
		if ok != tt.ok || next != tt.next {
			t.Errorf("Next(%s) = (%s, %v), want (%s, %v)", tt.tier, next, ok, tt.next, tt.ok)
		}
	}
}
