package extract

import (
	"regexp"
	"sort"
	"strings"

	gmailv1 "google.golang.org/api/gmail/v1"
)

// PartSummary is what a walk over a message payload yields: attachment
// classification plus the raw (still base64url-encoded) inline body
// segments in document order.
type PartSummary struct {
	HasAttachment   bool
	AttachmentTypes []string // unique lowercase extensions, sorted
	AttachmentCount int
	PlainSegments   []string
	HTMLSegments    []string
}

// Extension must be a short alphanumeric suffix; anything else falls back
// to the part's MIME type.
var extensionRe = regexp.MustCompile(`\.([A-Za-z0-9]{1,10})$`)

// WalkPayload traverses a Gmail message payload tree depth-first and
// classifies each part. Missing bodies, filenames and children are all
// tolerated; a nil payload yields an empty summary.
func WalkPayload(root *gmailv1.MessagePart) PartSummary {
	var s PartSummary
	seen := map[string]bool{}
	walkPart(root, &s, seen)
	s.AttachmentTypes = make([]string, 0, len(seen))
	for ext := range seen {
		s.AttachmentTypes = append(s.AttachmentTypes, ext)
	}
	sort.Strings(s.AttachmentTypes)
	return s
}

func walkPart(part *gmailv1.MessagePart, s *PartSummary, seen map[string]bool) {
	if part == nil {
		return
	}

	if isAttachment(part) {
		s.HasAttachment = true
		s.AttachmentCount++
		seen[attachmentType(part)] = true
	} else if part.Body != nil && part.Body.Data != "" {
		switch strings.ToLower(part.MimeType) {
		case "text/plain":
			s.PlainSegments = append(s.PlainSegments, part.Body.Data)
		case "text/html":
			s.HTMLSegments = append(s.HTMLSegments, part.Body.Data)
		}
	}

	for _, sub := range part.Parts {
		walkPart(sub, s, seen)
	}
}

// isAttachment reports whether a part carries attachment data: it must be
// named, and either reference out-of-line data or have inline bytes.
func isAttachment(part *gmailv1.MessagePart) bool {
	if part.Filename == "" {
		return false
	}
	if part.Body == nil {
		return false
	}
	return part.Body.AttachmentId != "" || part.Body.Size > 0
}

// attachmentType infers a type label for an attachment: the filename
// extension when present, else the MIME type, else "unknown".
func attachmentType(part *gmailv1.MessagePart) string {
	if m := extensionRe.FindStringSubmatch(part.Filename); m != nil {
		return strings.ToLower(m[1])
	}
	if part.MimeType != "" {
		return strings.ToLower(part.MimeType)
	}
	return "unknown"
}
