package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	genai "google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model produced no usable candidates.
var ErrEmptyResponse = errors.New("oracle: empty response from model")

const classifyPrompt = `You are curating Cryptol and SAW source files for a fine-tuning dataset.
For each item below decide whether the comment carries information worth
keeping next to the code (algorithm notes, specification references, proof
obligations) or is noise to drop (commented-out code, changelogs, license
boilerplate, auto-generated markers, trivial restatements of the code).

Respond with a JSON array of booleans, one per item, in the same order:
true = keep, false = drop. Respond with the JSON array only.`

// GeminiOracle classifies comment batches with a single Gemini call per batch.
type GeminiOracle struct {
	cli   *genai.Client
	model string
	log   *zap.Logger
}

// NewGeminiOracle constructs a GeminiOracle. The API key is taken from the
// environment by the genai client (GEMINI_API_KEY / GOOGLE_API_KEY).
func NewGeminiOracle(ctx context.Context, model string, log *zap.Logger) (*GeminiOracle, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &GeminiOracle{cli: cli, model: model, log: log}, nil
}

// Classify sends the whole batch as one request and parses the JSON array of
// booleans from the response. The caller tolerates a short result.
func (o *GeminiOracle) Classify(ctx context.Context, items []OracleItem) ([]bool, error) {
	if len(items) == 0 {
		return nil, nil
	}

	input, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode oracle batch: %w", err)
	}

	full := classifyPrompt + "\n\n[ITEMS]\n" + string(input)

	o.log.Debug("oracle request", zap.Int("items", len(items)), zap.Int("bytes", len(full)))

	resp, err := o.cli.Models.GenerateContent(ctx, o.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, fmt.Errorf("oracle call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	return parseDecisions(resp.Candidates[0].Content.Parts[0].Text)
}

// parseDecisions extracts a boolean array from the model output. Code fences
// are tolerated; anything else is an error for the caller's fallback policy.
func parseDecisions(text string) ([]bool, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var keeps []bool
	if err := json.Unmarshal([]byte(trimmed), &keeps); err != nil {
		return nil, fmt.Errorf("failed to parse oracle decisions: %w", err)
	}

	return keeps, nil
}
