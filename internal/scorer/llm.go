package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prepwise/backend/internal/domain/catalog"
)

// LLMScorer scores answers by calling an OpenAI-compatible chat endpoint
// (Ollama, LM Studio, vLLM, etc.).
type LLMScorer struct {
	url     string       // e.g. "http://localhost:1234"
	model   string       // e.g. "qwen3-8b"
	catalog *catalog.Catalog
	client  *http.Client // reused across calls
}

// Compile-time check: *LLMScorer satisfies the Scorer interface.
var _ Scorer = (*LLMScorer)(nil)

// NewLLMScorer creates a scorer that calls the given LLM endpoint. The
// catalog supplies the category vocabulary the prompt pins the model to.
func NewLLMScorer(url, model string, c *catalog.Catalog) *LLMScorer {
	return &LLMScorer{
		url:     url,
		model:   model,
		catalog: c,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

const maxRetries = 2

// ScoreAnswer sends the answer to the LLM and returns a validated Result.
// It retries once on parse failure (small models sometimes need a second
// try). A response that parses but fails schema validation is not retried:
// the model answered, it just answered badly.
func (s *LLMScorer) ScoreAnswer(ctx context.Context, question catalog.Question, answerText string) (Result, error) {
	prompt := buildScoringPrompt(question, s.catalog.CategoriesOf(question), answerText)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		raw, err := s.callLLM(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		jsonStr := extractJSON(raw)
		if jsonStr == "" {
			lastErr = &ScoreError{Reason: "no JSON object found in LLM response"}
			continue
		}

		var result Result
		if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
			lastErr = &ScoreError{Reason: "invalid JSON from LLM", Wrapped: err}
			continue
		}

		if err := result.Validate(); err != nil {
			return Result{}, err
		}
		return result, nil
	}

	return Result{}, &ScoreError{
		Reason:  fmt.Sprintf("failed after %d attempts", maxRetries),
		Wrapped: lastErr,
	}
}

// ── LLM communication ───────────────────────────────────────────────────────

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// callLLM sends a single request and returns the raw text response.
func (s *LLMScorer) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := llmRequest{
		Model: s.model,
		Messages: []llmMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var llmResp llmResponse
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode LLM response: %w", err)
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	content := llmResp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("LLM returned empty content")
	}

	return content, nil
}

// ── Prompt building ─────────────────────────────────────────────────────────

// buildScoringPrompt is kept short and directive for small (4-8B) models:
// key points and the category vocabulary are pre-listed on the Go side so
// the model classifies against fixed names instead of inventing its own,
// and the JSON schema comes last so it is the final thing the model sees.
func buildScoringPrompt(question catalog.Question, categories []string, answerText string) string {
	var keyPoints strings.Builder
	for i, kp := range question.KeyPoints {
		fmt.Fprintf(&keyPoints, "%d. %s\n", i+1, kp)
	}

	return fmt.Sprintf(`/no_think
You are scoring an interview practice answer. Grade it 0-10 overall and per category.

RULES:
- Score generously for correct ideas expressed in different words.
- 0 means no relevant content; 10 means complete and precise.
- Use ONLY these category names in the breakdown: %s
- List at most 3 strengths and 3 weaknesses, each a short phrase.

QUESTION (difficulty %d/10):
%s

KEY POINTS TO COVER:
%s
CANDIDATE'S ANSWER:
%s

Respond with ONLY this JSON, no explanation, no markdown:
{"overall_score": 0, "strengths": ["..."], "weaknesses": ["..."], "category_breakdown": [{"category": "...", "score": 0, "comment": "..."}]}`,
		strings.Join(categories, ", "), question.Difficulty, question.Text, keyPoints.String(), answerText)
}

// ── JSON extraction ─────────────────────────────────────────────────────────

// extractJSON finds the outermost JSON object in a string. It handles
// nested braces correctly and skips braces inside quoted strings.
func extractJSON(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
