package adapter

import "context"

// OracleItem is one comment awaiting classification, together with the
// material the oracle needs to judge it.
type OracleItem struct {
	CommentText string `json:"comment_text"`
	FilePath    string `json:"file_path"`
	CodeContext string `json:"code_context"`
}

// Oracle decides whether each comment should be kept in the curated dataset.
// Classify returns one boolean per item, in input order. A short result is
// tolerated by the caller, which applies its fallback policy to the remainder.
type Oracle interface {
	Classify(ctx context.Context, items []OracleItem) ([]bool, error)
}

// HeuristicOracle classifies comments by length alone: short comments are
// kept, long ones dropped. It backs offline runs and mirrors the fallback
// policy applied when a remote oracle fails.
type HeuristicOracle struct {
	KeepBelow int
}

// NewHeuristicOracle constructs a HeuristicOracle keeping comments shorter
// than keepBelow bytes.
func NewHeuristicOracle(keepBelow int) *HeuristicOracle {
	return &HeuristicOracle{KeepBelow: keepBelow}
}

// Classify applies the length threshold to every item.
func (o *HeuristicOracle) Classify(_ context.Context, items []OracleItem) ([]bool, error) {
	keeps := make([]bool, len(items))
	for i, item := range items {
		keeps[i] = len(item.CommentText) < o.KeepBelow
	}

	return keeps, nil
}
