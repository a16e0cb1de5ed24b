package extract

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64URL decodes Gmail's URL-safe base64 body data. Padding is
// normalized deterministically before decoding, and decode errors yield
// whatever prefix decoded cleanly rather than failing: body extraction is
// best-effort by design.
func DecodeBase64URL(data string) string {
	if data == "" {
		return ""
	}
	std := strings.Map(func(r rune) rune {
		switch r {
		case '-':
			return '+'
		case '_':
			return '/'
		}
		return r
	}, data)
	if rem := len(std) % 4; rem != 0 {
		std += strings.Repeat("=", 4-rem)
	}
	dst := make([]byte, base64.StdEncoding.DecodedLen(len(std)))
	n, err := base64.StdEncoding.Decode(dst, []byte(std))
	if err != nil && n == 0 {
		// Even the partial decode produced nothing usable.
		return ""
	}
	return string(dst[:n])
}

// SelectBody picks the message body from walked segments: any plain-text
// segment wins outright (joined in document order), otherwise the HTML
// segments are joined and converted to text. The result is cleaned and,
// when maxChars > 0, truncated to that many characters after cleaning.
func SelectBody(s PartSummary, maxChars int) string {
	var text string
	if len(s.PlainSegments) > 0 {
		text = CleanText(decodeAll(s.PlainSegments))
	} else if len(s.HTMLSegments) > 0 {
		text = HTMLToText(decodeAll(s.HTMLSegments))
	}
	return Truncate(text, maxChars)
}

// HTMLBody converts the HTML segments to text regardless of whether a
// plain-text body exists; empty when the message carries no HTML.
func HTMLBody(s PartSummary, maxChars int) string {
	if len(s.HTMLSegments) == 0 {
		return ""
	}
	return Truncate(HTMLToText(decodeAll(s.HTMLSegments)), maxChars)
}

func decodeAll(segments []string) string {
	decoded := make([]string, 0, len(segments))
	for _, seg := range segments {
		decoded = append(decoded, DecodeBase64URL(seg))
	}
	return strings.Join(decoded, "\n")
}

// Truncate cuts text to the first n characters. n == 0 means unlimited.
func Truncate(text string, n int) string {
	if n <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
