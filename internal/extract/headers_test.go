package extract

import (
	"testing"

	gmailv1 "google.golang.org/api/gmail/v1"
)

func TestGetHeader(t *testing.T) {
	headers := []*gmailv1.MessagePartHeader{
		{Name: "From", Value: "a@example.com"},
		{Name: "Subject", Value: "first"},
		{Name: "subject", Value: "second"},
		nil,
	}

	tests := []struct {
		name string
		want string
	}{
		{"From", "a@example.com"},
		{"from", "a@example.com"},
		{"SUBJECT", "first"}, // first match wins, case-insensitively
		{"Reply-To", ""},
	}
	for _, tc := range tests {
		if got := GetHeader(headers, tc.name); got != tc.want {
			t.Errorf("GetHeader(%q) = %q; want %q", tc.name, got, tc.want)
		}
	}

	if got := GetHeader(nil, "From"); got != "" {
		t.Errorf("GetHeader(nil) = %q; want empty", got)
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in         string
		wantName   string
		wantEmail  string
		wantDomain string
	}{
		{`John Doe <John@Example.COM>`, "John Doe", "john@example.com", "example.com"},
		{`"Quoted Name" <x@y.co>`, "Quoted Name", "x@y.co", "y.co"},
		{`<bare@host.org>`, "", "bare@host.org", "host.org"},
		{`support@Company.COM`, "", "support@company.com", "company.com"},
		{`Billing team billing@shop.io thanks`, "Billing team  thanks", "billing@shop.io", "shop.io"},
		{`no address here`, "no address here", "", ""},
		{``, "", "", ""},
	}
	for _, tc := range tests {
		got := ParseAddress(tc.in)
		if got.DisplayName != tc.wantName || got.Email != tc.wantEmail || got.Domain != tc.wantDomain {
			t.Errorf("ParseAddress(%q) = %+v; want {%q %q %q}",
				tc.in, got, tc.wantName, tc.wantEmail, tc.wantDomain)
		}
	}
}

func TestDomainFromEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"john@example.com", "example.com"},
		{"a@B.Org", "b.org"},
		{"weird@one@two", "one@two"}, // first '@' splits
		{"noat", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := DomainFromEmail(tc.in); got != tc.want {
			t.Errorf("DomainFromEmail(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
