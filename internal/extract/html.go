package extract

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// The HTML-to-text conversion is a fixed regex cascade, not a real parser.
// Email HTML is too broken for strict parsing and the output only feeds a
// CSV column and the redaction engine, so lossy is acceptable. The order
// of the steps below is part of the contract: anchors are rewritten before
// block tags become newlines, entities are decoded only after all tags are
// gone, and whitespace collapsing runs last, before truncation.

var (
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)

	// Containers whose content must go with them. RE2 has no
	// backreferences, so one pattern per tag.
	containerRes = compileContainerPatterns("script", "style", "noscript", "head", "svg")

	cssCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	cssAtBlockRe  = regexp.MustCompile(`(?s)@(?:media|keyframes|-[a-z]+-keyframes)[^{]*\{(?:[^{}]*\{[^{}]*\})*[^{}]*\}`)
	cssRuleRe     = regexp.MustCompile(`(?s)[#.@]?[A-Za-z][A-Za-z0-9_\-.,:#\s>*\[\]="']{0,200}\{[^{}]*\}`)
	cssFragmentRe = regexp.MustCompile(`(?m)^[ \t]*[A-Za-z-]+[ \t]*:[ \t]*[^;{}\n]+;[ \t]*$`)

	anchorRe = regexp.MustCompile(`(?is)<a\b[^>]*>.*?</a>`)
	hrefRe   = regexp.MustCompile(`(?is)href\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s>]+))`)
	aInnerRe = regexp.MustCompile(`(?is)<a\b[^>]*>(.*?)</a>`)

	brRe       = regexp.MustCompile(`(?i)<br\s*/?\s*>`)
	pCloseRe   = regexp.MustCompile(`(?i)</p\s*>`)
	divCloseRe = regexp.MustCompile(`(?i)</(?:div|li)\s*>`)
	liOpenRe   = regexp.MustCompile(`(?i)<li\b[^>]*>`)
	tagRe      = regexp.MustCompile(`(?s)<[^>]+>`)

	entityRe = regexp.MustCompile(`&(?:#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6}|[A-Za-z][A-Za-z0-9]{1,31});`)

	base64BlobRe = regexp.MustCompile(`[A-Za-z0-9+/=_-]{200,}`)
	dataURIRe    = regexp.MustCompile(`(?i)\bdata:[^\s"'<>)]{8,}`)

	intraLineWSRe = regexp.MustCompile(`[ \t\x{00A0}]+`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
)

func compileContainerPatterns(tags ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(tags))
	for _, tag := range tags {
		res = append(res, regexp.MustCompile(fmt.Sprintf(`(?is)<%s\b[^>]*>.*?</%s\s*>`, tag, tag)))
	}
	return res
}

// HTMLToText converts an HTML email body to readable plain text.
func HTMLToText(src string) string {
	text := commentRe.ReplaceAllString(src, "")

	for _, re := range containerRes {
		text = re.ReplaceAllString(text, "")
	}

	// Inline CSS survives in <body> often enough (broken templates) that
	// it has to be scrubbed as text, not just inside <style>.
	text = cssCommentRe.ReplaceAllString(text, "")
	text = cssAtBlockRe.ReplaceAllString(text, "")
	text = cssRuleRe.ReplaceAllString(text, "")
	text = cssFragmentRe.ReplaceAllString(text, "")

	text = anchorRe.ReplaceAllStringFunc(text, rewriteAnchor)

	text = brRe.ReplaceAllString(text, "\n")
	text = pCloseRe.ReplaceAllString(text, "\n\n")
	text = divCloseRe.ReplaceAllString(text, "\n")
	text = liOpenRe.ReplaceAllString(text, "\n- ")

	text = tagRe.ReplaceAllString(text, "")

	text = decodeEntities(text)

	return CleanText(text)
}

// rewriteAnchor turns <a href="H">I</a> into "I (H)". Degenerate cases:
// no href keeps the inner text (or "link" when that is empty too), empty
// inner text keeps the href, and inner text that already spells out the
// URL is left alone.
func rewriteAnchor(match string) string {
	var href string
	if m := hrefRe.FindStringSubmatch(match); m != nil {
		for _, g := range m[1:] {
			if g != "" {
				href = strings.TrimSpace(g)
				break
			}
		}
	}
	var inner string
	if m := aInnerRe.FindStringSubmatch(match); m != nil {
		inner = strings.TrimSpace(tagRe.ReplaceAllString(m[1], ""))
	}

	switch {
	case href == "" && inner == "":
		return "link"
	case href == "":
		return inner
	case inner == "":
		return href
	case strings.Contains(inner, href):
		return inner
	default:
		return inner + " (" + href + ")"
	}
}

// decodeEntities resolves named and numeric entities, except that entities
// which would decode to invisible or control characters decode to nothing.
// Unknown entities are left as literal text.
func decodeEntities(text string) string {
	return entityRe.ReplaceAllStringFunc(text, func(ent string) string {
		decoded := html.UnescapeString(ent)
		if decoded == ent {
			return ent
		}
		var b strings.Builder
		for _, r := range decoded {
			if isInvisibleRune(r) {
				continue
			}
			b.WriteRune(r)
		}
		return b.String()
	})
}

// isInvisibleRune reports whether r is a control or zero-width character
// that must never survive into CSV output. Newlines and tabs are kept;
// they are whitespace, handled by the collapsing pass.
func isInvisibleRune(r rune) bool {
	switch {
	case r == '\n' || r == '\t':
		return false
	case r < 0x20 || r == 0x7F:
		return true
	case r >= 0x200B && r <= 0x200F:
		return true
	case r == 0x034F || r == 0xFEFF || r == 0x00AD:
		return true
	}
	return false
}

// CleanText is the shared tail of body normalization: strip invisible
// characters, drop base64 blobs and data: URIs, and normalize whitespace.
// Plain-text bodies go through this directly; HTML bodies reach it at the
// end of HTMLToText.
func CleanText(text string) string {
	text = strings.Map(func(r rune) rune {
		if r == '\r' || isInvisibleRune(r) {
			return -1
		}
		return r
	}, text)

	text = base64BlobRe.ReplaceAllString(text, "")
	text = dataURIRe.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(intraLineWSRe.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
