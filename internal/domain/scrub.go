package domain

import (
	"regexp"

	m "crycurate/internal/model"
)

var (
	copyrightBlockRe = regexp.MustCompile(`(?is)/\*.*?copyright.*?\*/`)
	copyrightLineRe  = regexp.MustCompile(`(?im)^[ \t]*//.*copyright.*$`)
)

// ScrubCopyrights removes copyright block and line comments from a dataset
// row's content. Other fields pass through untouched.
func ScrubCopyrights(row m.FileRecord) m.FileRecord {
	s := copyrightBlockRe.ReplaceAllString(row.Content, "")
	row.Content = copyrightLineRe.ReplaceAllString(s, "")

	return row
}
