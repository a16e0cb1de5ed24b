// Package extract turns one raw Gmail message into the flat field map the
// CSV writer consumes. Everything in here is pure: no I/O, no network, no
// state shared between messages.
package extract

import (
	"strconv"
	"strings"
	"time"

	gmailv1 "google.golang.org/api/gmail/v1"

	"mailsift/internal/model"
	"mailsift/internal/redact"
)

// BuildRow flattens a full-format Gmail message into CSV fields and
// returns the row together with the number of redactions applied. The
// message is never mutated. Missing payload, headers or bodies degrade to
// empty fields, never errors.
func BuildRow(msg *gmailv1.Message, maxChars int, cfg redact.Config) (model.Row, int) {
	row := model.Row{}
	for _, col := range model.Columns {
		row[col] = ""
	}
	if msg == nil {
		return row, 0
	}

	var headers []*gmailv1.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}

	from := ParseAddress(GetHeader(headers, "From"))
	replyTo := ParseAddress(GetHeader(headers, "Reply-To"))

	summary := WalkPayload(msg.Payload)

	row["date"] = parseDateRFC3339(GetHeader(headers, "Date"))
	row["message_id"] = msg.Id
	row["thread_id"] = msg.ThreadId
	row["labels"] = strings.Join(msg.LabelIds, ",")
	row["from_email"] = from.Email
	row["from_name"] = from.DisplayName
	row["sender_domain"] = from.Domain
	row["reply_to"] = replyTo.Email
	row["reply_to_domain"] = replyTo.Domain
	row["delivered_to"] = ParseAddress(GetHeader(headers, "Delivered-To")).Email
	row["to"] = GetHeader(headers, "To")
	row["cc"] = GetHeader(headers, "Cc")
	row["bcc"] = GetHeader(headers, "Bcc")
	row["has_attachment"] = strconv.FormatBool(summary.HasAttachment)
	row["attachment_types"] = strings.Join(summary.AttachmentTypes, ",")
	row["attachment_count"] = strconv.Itoa(summary.AttachmentCount)
	row["has_list_unsubscribe"] = strconv.FormatBool(GetHeader(headers, "List-Unsubscribe") != "")

	subject := GetHeader(headers, "Subject")
	snippet := CleanText(decodeEntities(msg.Snippet))
	bodyText := SelectBody(summary, maxChars)
	bodyHTML := HTMLBody(summary, maxChars)

	redacted := 0
	for col, text := range map[string]string{
		"subject":   subject,
		"snippet":   snippet,
		"body_text": bodyText,
		"body_html": bodyHTML,
	} {
		res := redact.Sanitize(text, cfg)
		row[col] = res.Text
		redacted += res.TotalCount
	}

	return row, redacted
}

// parseDateRFC3339 normalizes a Date header into RFC3339 UTC. Unparseable
// values are passed through verbatim rather than dropped; the column is
// for humans and spreadsheets first.
func parseDateRFC3339(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	layouts := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC822Z,
		time.RFC822,
		time.RFC850,
		time.RFC3339,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
		"2 Jan 2006 15:04:05 -0700",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, h); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return h
}
