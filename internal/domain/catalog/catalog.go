package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed data/questions.json
var bundledCatalog []byte

// Question is an immutable catalog entry. The catalog is loaded once at
// startup and never mutated afterwards.
type Question struct {
	ID         int      `json:"id"`
	Text       string   `json:"text"`
	Difficulty int      `json:"difficulty"` // 1-10
	Tier       Tier     `json:"tier"`
	KeyPoints  []string `json:"key_points"`
	Modules    []string `json:"modules,omitempty"`
}

// InModule reports whether the question belongs to the given module.
func (q Question) InModule(module string) bool {
	for _, m := range q.Modules {
		if m == module {
			return true
		}
	}
	return false
}

// categories returns the distinct categories the question's key points
// roll up into, given the catalog's key-point mapping.
func (q Question) categories(keyPointCategory map[string]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, kp := range q.KeyPoints {
		cat, ok := keyPointCategory[kp]
		if !ok || seen[cat] {
			continue
		}
		seen[cat] = true
		out = append(out, cat)
	}
	return out
}

// Catalog is the static question set plus the key-point-to-category mapping,
// both validated once at construction. Components receive a *Catalog
// explicitly; there is no package-level instance.
type Catalog struct {
	questions        []Question
	byID             map[int]Question
	keyPointCategory map[string]string
	categories       map[string]bool
}

type catalogFile struct {
	Questions         []Question        `json:"questions"`
	KeyPointCategories map[string]string `json:"key_point_categories"`
}

// Load parses and validates the bundled catalog.
func Load() (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(bundledCatalog, &file); err != nil {
		return nil, fmt.Errorf("parse bundled catalog: %w", err)
	}
	return New(file.Questions, file.KeyPointCategories)
}

// New builds a Catalog from explicit inputs, validating every entry:
// unique positive IDs, difficulty in 1-10, a real partition tier, and every
// key point present in the category mapping.
func New(questions []Question, keyPointCategories map[string]string) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog has no questions")
	}

	byID := make(map[int]Question, len(questions))
	for _, q := range questions {
		if q.ID <= 0 {
			return nil, fmt.Errorf("question %q: id must be positive, got %d", q.Text, q.ID)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		if q.Difficulty < 1 || q.Difficulty > 10 {
			return nil, fmt.Errorf("question %d: difficulty %d out of range 1-10", q.ID, q.Difficulty)
		}
		if !q.Tier.IsPartition() {
			return nil, fmt.Errorf("question %d: invalid tier %q", q.ID, q.Tier)
		}
		if len(q.KeyPoints) == 0 {
			return nil, fmt.Errorf("question %d: no key points", q.ID)
		}
		for _, kp := range q.KeyPoints {
			if _, ok := keyPointCategories[kp]; !ok {
				return nil, fmt.Errorf("question %d: key point %q has no category mapping", q.ID, kp)
			}
		}
		byID[q.ID] = q
	}

	categories := make(map[string]bool)
	for _, cat := range keyPointCategories {
		categories[cat] = true
	}

	// Stable catalog order: ascending ID. The selector's adaptive jump rule
	// depends on this ordering.
	ordered := make([]Question, len(questions))
	copy(ordered, questions)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	return &Catalog{
		questions:        ordered,
		byID:             byID,
		keyPointCategory: keyPointCategories,
		categories:       categories,
	}, nil
}

// Question looks up a question by ID.
func (c *Catalog) Question(id int) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Questions returns all questions in catalog (ID) order.
// Callers must not mutate the returned slice.
func (c *Catalog) Questions() []Question {
	return c.questions
}

// InTier returns the questions visible under the given tier filter,
// in catalog order.
func (c *Catalog) InTier(tier Tier) []Question {
	var out []Question
	for _, q := range c.questions {
		if tier.Matches(q.Tier) {
			out = append(out, q)
		}
	}
	return out
}

// TierSize returns how many questions a tier filter covers.
func (c *Catalog) TierSize(tier Tier) int {
	n := 0
	for _, q := range c.questions {
		if tier.Matches(q.Tier) {
			n++
		}
	}
	return n
}

// CategoryFor resolves a key point to its parent category.
func (c *Catalog) CategoryFor(keyPoint string) (string, bool) {
	cat, ok := c.keyPointCategory[keyPoint]
	return cat, ok
}

// HasCategory reports whether the category name is known to the catalog.
// AI responses reference categories by name; unknown names are skipped at
// aggregation time rather than credited.
func (c *Catalog) HasCategory(name string) bool {
	return c.categories[name]
}

// CategoriesOf returns the distinct categories for a question's key points.
func (c *Catalog) CategoriesOf(q Question) []string {
	return q.categories(c.keyPointCategory)
}

// Len returns the total number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}
