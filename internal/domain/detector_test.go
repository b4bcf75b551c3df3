package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "crycurate/internal/model"
)

func TestDetectSpans_LineComment(t *testing.T) {
	content := "let x = 1 // trailing\n"

	spans := DetectSpans(content)

	require.Len(t, spans, 1)
	assert.Equal(t, m.Span{Start: 10, End: 21, Kind: m.SpanLine}, spans[0])
	assert.Equal(t, "// trailing", content[spans[0].Start:spans[0].End])
}

func TestDetectSpans_URLInsideComment(t *testing.T) {
	content := "// see https://example.com/docs\nf x = x\n"

	spans := DetectSpans(content)

	require.Len(t, spans, 1)
	assert.Equal(t, "// see https://example.com/docs", content[spans[0].Start:spans[0].End])
}

func TestDetectSpans_BlockComment(t *testing.T) {
	content := "a\n/* block\ncomment */\nb\n"

	spans := DetectSpans(content)

	require.Len(t, spans, 1)
	assert.Equal(t, m.SpanBlock, spans[0].Kind)
	assert.Equal(t, "/* block\ncomment */", content[spans[0].Start:spans[0].End])
}

func TestDetectSpans_DocCommentIgnored(t *testing.T) {
	content := "/** doc comment */\nf x = x\n"

	spans := DetectSpans(content)

	assert.Empty(t, spans)
}

func TestDetectSpans_DocThenBlock(t *testing.T) {
	content := "/** doc */ /* plain */\n"

	spans := DetectSpans(content)

	require.Len(t, spans, 1)
	assert.Equal(t, "/* plain */", content[spans[0].Start:spans[0].End])
}

func TestDetectSpans_UnterminatedBlockRunsToEOF(t *testing.T) {
	content := "f x = x\n/* oops"

	spans := DetectSpans(content)

	require.Len(t, spans, 1)
	assert.Equal(t, m.Span{Start: 8, End: len(content), Kind: m.SpanBlock}, spans[0])
}

func TestDetectSpans_CoalescesAdjacentLineComments(t *testing.T) {
	content := "// a\n// b\nlet x = 1\n"

	spans := DetectSpans(content)

	require.Len(t, spans, 1)
	assert.Equal(t, "// a\n// b", content[spans[0].Start:spans[0].End])
}

func TestDetectSpans_CoalescesIndentedRun(t *testing.T) {
	content := "  // a\n  // b\n  f x = x\n"

	spans := DetectSpans(content)

	require.Len(t, spans, 1)
	assert.Equal(t, "// a\n  // b", content[spans[0].Start:spans[0].End])
}

func TestDetectSpans_BlankLineBreaksRun(t *testing.T) {
	content := "// a\n\n// b\n"

	spans := DetectSpans(content)

	require.Len(t, spans, 2)
	assert.Equal(t, "// a", content[spans[0].Start:spans[0].End])
	assert.Equal(t, "// b", content[spans[1].Start:spans[1].End])
}

func TestDetectSpans_CodeBetweenBreaksRun(t *testing.T) {
	content := "// a\nf x = x\n// b\n"

	spans := DetectSpans(content)

	require.Len(t, spans, 2)
}

func TestDetectSpans_LineMarkerInsideBlockDropped(t *testing.T) {
	content := "/* outer // inner */\n"

	spans := DetectSpans(content)

	require.Len(t, spans, 1)
	assert.Equal(t, m.SpanBlock, spans[0].Kind)
	assert.Equal(t, "/* outer // inner */", content[spans[0].Start:spans[0].End])
}

func TestDetectSpans_Empty(t *testing.T) {
	assert.Empty(t, DetectSpans(""))
	assert.Empty(t, DetectSpans("f x = x\n"))
}

func TestFingerprint_Stable(t *testing.T) {
	a := Fingerprint("// hello")
	b := Fingerprint("// hello")
	c := Fingerprint("// other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 40)
}
