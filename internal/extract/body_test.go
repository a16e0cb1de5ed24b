package extract

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func b64url(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestDecodeBase64URL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"unpadded", "SGVsbG8", "Hello"},
		{"padded", "SGVsbG8=", "Hello"},
		{"urlsafe alphabet", b64url("a?b>c"), "a?b>c"},
		{"newline in payload", b64url("line1\nline2"), "line1\nline2"},
	}
	for _, tc := range tests {
		if got := DecodeBase64URL(tc.in); got != tc.want {
			t.Errorf("DecodeBase64URL(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestDecodeBase64URL_MalformedInputDoesNotPanic(t *testing.T) {
	// Garbage in, best-effort out. The only guarantee is no failure.
	for _, in := range []string{"!!!!", "a", "ab", "abc", "====", "SGVsbG8!extra"} {
		assert.NotPanics(t, func() { _ = DecodeBase64URL(in) }, "input %q", in)
	}
	// A valid prefix before a corrupt tail still decodes the prefix.
	out := DecodeBase64URL("SGVsbG8g" + "!!!!")
	assert.True(t, strings.HasPrefix(out, "Hello "), "got %q", out)
}

func TestSelectBody_PlainWinsOverHTML(t *testing.T) {
	s := PartSummary{
		PlainSegments: []string{b64url("first part"), b64url("second part")},
		HTMLSegments:  []string{b64url("<p>ignored</p>")},
	}
	got := SelectBody(s, 0)
	assert.Equal(t, "first part\nsecond part", got)
}

func TestSelectBody_FallsBackToHTML(t *testing.T) {
	s := PartSummary{
		HTMLSegments: []string{b64url("<p>Hello<br>world</p>")},
	}
	assert.Equal(t, "Hello\nworld", SelectBody(s, 0))
}

func TestSelectBody_TruncatesAfterNormalization(t *testing.T) {
	// 100 "a"s wrapped in noisy HTML. After conversion the text is
	// exactly 100 chars; truncation to 10 cuts the clean text, never the
	// raw markup.
	raw := "<div>" + strings.Repeat("a", 100) + "</div>"
	s := PartSummary{HTMLSegments: []string{b64url(raw)}}

	got := SelectBody(s, 10)
	assert.Equal(t, strings.Repeat("a", 10), got)

	assert.Len(t, []rune(SelectBody(s, 0)), 100, "maxChars 0 means unlimited")
}

func TestSelectBody_TruncationCountsRunes(t *testing.T) {
	s := PartSummary{PlainSegments: []string{b64url("héllo wörld")}}
	got := SelectBody(s, 5)
	assert.Equal(t, "héllo", got)
}

func TestSelectBody_Empty(t *testing.T) {
	assert.Equal(t, "", SelectBody(PartSummary{}, 0))
	assert.Equal(t, "", HTMLBody(PartSummary{}, 0))
}

func TestHTMLBody_IndependentOfPlain(t *testing.T) {
	s := PartSummary{
		PlainSegments: []string{b64url("plain body")},
		HTMLSegments:  []string{b64url("<b>html body</b>")},
	}
	assert.Equal(t, "html body", HTMLBody(s, 0))
}
