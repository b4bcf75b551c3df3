package model

// Variant identifies a dataset flavor.
type Variant string

const (
	// VariantWithComments keeps the source untouched apart from newline
	// normalization.
	VariantWithComments Variant = "with_comments"
	// VariantWithoutComments strips both line and block comments.
	VariantWithoutComments Variant = "without_comments"
	// VariantHybrid strips line comments and keeps block comments.
	VariantHybrid Variant = "hybrid"
	// VariantCurated removes only the comments the oracle classified as noise.
	VariantCurated Variant = "curated"
)

// FileRecord is one JSONL dataset row.
type FileRecord struct {
	Filename string  `json:"filename"`
	Content  string  `json:"content"`
	Variant  Variant `json:"variant,omitempty"`
}
