package extract

import (
	"regexp"
	"strings"

	gmailv1 "google.golang.org/api/gmail/v1"
)

// ParsedAddress is the decomposition of one "Name <addr>" header value.
// Domain is always derived from Email, never parsed independently.
type ParsedAddress struct {
	DisplayName string
	Email       string
	Domain      string
}

var (
	angleAddrRe = regexp.MustCompile(`^(.*)<([^<>]+)>\s*$`)
	emailRe     = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
)

// GetHeader returns the value of the first header whose name matches
// case-insensitively, or "" when absent. Headers stay in wire order, so
// "first" is well defined.
func GetHeader(headers []*gmailv1.MessagePartHeader, name string) string {
	for _, h := range headers {
		if h != nil && strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// ParseAddress splits a From/Reply-To style value into display name and
// address. It never fails: headers with no recognizable address come back
// with an empty Email and the raw text as the name.
func ParseAddress(raw string) ParsedAddress {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedAddress{}
	}

	if m := angleAddrRe.FindStringSubmatch(raw); m != nil {
		name := strings.TrimSpace(m[1])
		name = strings.Trim(name, `"'`)
		email := strings.ToLower(strings.TrimSpace(m[2]))
		return ParsedAddress{
			DisplayName: strings.TrimSpace(name),
			Email:       email,
			Domain:      DomainFromEmail(email),
		}
	}

	if m := emailRe.FindString(raw); m != "" {
		email := strings.ToLower(m)
		name := strings.Replace(raw, m, "", 1)
		name = strings.Map(func(r rune) rune {
			switch r {
			case '<', '>', '"', '\'':
				return -1
			}
			return r
		}, name)
		return ParsedAddress{
			DisplayName: strings.TrimSpace(name),
			Email:       email,
			Domain:      DomainFromEmail(email),
		}
	}

	return ParsedAddress{DisplayName: raw}
}

// DomainFromEmail returns the lowercased part after the first '@', or ""
// when the address has none.
func DomainFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at >= 0 {
		return strings.ToLower(email[at+1:])
	}
	return ""
}
