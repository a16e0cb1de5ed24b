package redact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enabledOnly(names ...string) Config {
	cfg := Config{Enabled: true, Categories: map[string]bool{}}
	for _, n := range names {
		cfg.Categories[n] = true
	}
	return cfg
}

func TestSanitize_DisabledIsIdentity(t *testing.T) {
	texts := []string{
		"",
		"My SSN is 123-45-6789 and my card is 4111-1111-1111-1111",
		"plain text with nothing sensitive",
		"Call (555) 867-5309 at 123 Main Street",
	}
	cfg := DefaultConfig()
	cfg.Enabled = false

	for _, text := range texts {
		res := Sanitize(text, cfg)
		assert.Equal(t, text, res.Text)
		assert.Zero(t, res.TotalCount)
		require.Len(t, res.PerCategory, len(Registry()), "every category must be present in the tally")
		for name, n := range res.PerCategory {
			assert.Zero(t, n, "category %s should not have fired", name)
		}
	}
}

func TestSanitize_TaxID(t *testing.T) {
	res := Sanitize("My SSN is 123-45-6789", enabledOnly("tax_ids"))

	assert.Equal(t, "My SSN is [REDACTED_TAX_ID]", res.Text)
	assert.Equal(t, 1, strings.Count(res.Text, "[REDACTED_TAX_ID]"))
	assert.Equal(t, 1, res.PerCategory["tax_ids"])
	assert.Equal(t, 1, res.TotalCount)
	for name, n := range res.PerCategory {
		if name != "tax_ids" {
			assert.Zero(t, n, "category %s", name)
		}
	}
}

func TestSanitize_DisabledCategoryLeavesTextAlone(t *testing.T) {
	// phone_numbers off, tax_ids on: the phone-shaped substring must
	// survive even though another category fires on the same text.
	res := Sanitize("SSN 123-45-6789, call 555-867-5309", enabledOnly("tax_ids"))

	assert.Contains(t, res.Text, "555-867-5309")
	assert.Contains(t, res.Text, "[REDACTED_TAX_ID]")
	assert.Zero(t, res.PerCategory["phone_numbers"])
}

func TestSanitize_CreditCards(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"card 4111-1111-1111-1111 on file", "card [REDACTED_CARD] on file"},
		{"card 4111 1111 1111 1111 on file", "card [REDACTED_CARD] on file"},
		{"amex 3782-822463-10005 ok", "amex [REDACTED_CARD] ok"},
		{"contiguous 4111111111111111.", "contiguous [REDACTED_CARD]."},
	}
	cfg := enabledOnly("credit_cards")
	for _, tc := range tests {
		if got := Sanitize(tc.in, cfg).Text; got != tc.want {
			t.Errorf("Sanitize(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize_OTPAndPasswords(t *testing.T) {
	cfg := enabledOnly("otp_codes", "passwords")

	res := Sanitize("Your verification code is 482913. Password: hunter2", cfg)
	assert.NotContains(t, res.Text, "482913")
	assert.NotContains(t, res.Text, "hunter2")
	assert.Equal(t, 1, res.PerCategory["otp_codes"])
	assert.Equal(t, 1, res.PerCategory["passwords"])
}

func TestSanitize_TokenURLsBeforePlainURLs(t *testing.T) {
	text := "reset at https://example.com/a?token=s3cret and docs at https://example.com/docs"

	// Default config: token-bearing URL goes, plain URL stays.
	res := Sanitize(text, DefaultConfig())
	assert.NotContains(t, res.Text, "s3cret")
	assert.Contains(t, res.Text, "https://example.com/docs")

	// With the unconditional urls category on, both go.
	cfg := DefaultConfig()
	cfg.Categories["urls"] = true
	res = Sanitize(text, cfg)
	assert.NotContains(t, res.Text, "example.com")
}

func TestSanitize_FixedPoint(t *testing.T) {
	text := "Your code is 482913. Card 4111-1111-1111-1111. Call (555) 867-5309.\n" +
		"SSN 123-45-6789, IP 10.1.2.3, ship to: 123 Main Street Apt 4B\n" +
		"Reset: https://example.com/a?token=abc123def"

	cfg := DefaultConfig()
	first := Sanitize(text, cfg)
	require.Greater(t, first.TotalCount, 0)

	second := Sanitize(first.Text, cfg)
	assert.Equal(t, first.Text, second.Text, "sanitize must be a fixed point on its own output")
	assert.Zero(t, second.TotalCount, "no pattern may match a placeholder token")
}

func TestRegistry_Defaults(t *testing.T) {
	wantEnabled := map[string]bool{
		"credit_cards": true, "bank_accounts": true, "tax_ids": true,
		"passwords": true, "api_keys": true, "otp_codes": true,
		"phone_numbers": true, "physical_addresses": true,
		"ip_addresses": true, "government_ids": true, "token_urls": true,
		"case_numbers": true, "claim_numbers": true, "auth_codes": true,
		"device_ids": true, "employee_ids": true, "dates_of_birth": true,
		"ages": true, "member_ids": true, "vehicle_ids": true,
		"medical_ids": true,
		"email_addresses": false, "order_numbers": false,
		"tracking_numbers": false, "booking_references": false,
		"financial_amounts": false, "urls": false,
	}

	reg := Registry()
	require.Len(t, reg, len(wantEnabled))
	seen := map[string]bool{}
	for _, c := range reg {
		want, ok := wantEnabled[c.Name]
		require.True(t, ok, "unexpected category %s", c.Name)
		assert.Equal(t, want, c.DefaultEnabled, "default for %s", c.Name)
		assert.False(t, seen[c.Name], "duplicate category %s", c.Name)
		assert.NotEmpty(t, c.Token)
		assert.NotEmpty(t, c.Patterns)
		seen[c.Name] = true
	}

	// Security categories must run before the convenience block.
	assert.Equal(t, "credit_cards", reg[0].Name)
}

func TestSanitize_EmptyConfigIsNoOp(t *testing.T) {
	res := Sanitize("SSN 123-45-6789", Config{Enabled: true, Categories: map[string]bool{}})
	assert.Equal(t, "SSN 123-45-6789", res.Text)
	assert.Zero(t, res.TotalCount)
}
