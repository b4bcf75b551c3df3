package model

// CommentRecord captures one resolved comment occurrence. Records are created
// during rewriting, in document order, and are immutable afterwards.
//
// Fingerprint is a content hash of the exact comment text, so textually
// identical comments anywhere in the corpus share one fingerprint and one
// cached decision.
type CommentRecord struct {
	Filename    string `json:"filename"`
	Fingerprint string `json:"sha1"`
	Text        string `json:"comment"`
	Keep        bool   `json:"keep"`
	Snippet     string `json:"snippet"`
}
