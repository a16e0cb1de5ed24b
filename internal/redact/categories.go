package redact

import "regexp"

// registry is the closed, ordered set of redaction categories. Order
// matters twice over: categories run top to bottom against already-mutated
// text, and patterns within a category run in declaration order. Security
// and PII categories come first and default on; convenience categories sit
// at the end and default off.
var registry = []Category{
	{
		Name:           "credit_cards",
		Description:    "Payment card numbers (grouped or contiguous)",
		DefaultEnabled: true,
		Token:          "[REDACTED_CARD]",
		Patterns: compile(
			`\b\d{4}[- ]\d{4}[- ]\d{4}[- ]\d{4}\b`,
			`\b3[47]\d{2}[- ]\d{6}[- ]\d{5}\b`,
			`\b\d{13,19}\b`,
		),
	},
	{
		Name:           "bank_accounts",
		Description:    "Bank account, routing numbers and IBANs",
		DefaultEnabled: true,
		Token:          "[REDACTED_ACCOUNT]",
		Patterns: compile(
			`(?i)\b(?:account|acct|routing)\s*(?:number|no|num|#)?\s*[:#]?\s*\d{6,17}\b`,
			`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`,
		),
	},
	{
		Name:           "tax_ids",
		Description:    "SSNs, EINs and other tax identifiers",
		DefaultEnabled: true,
		Token:          "[REDACTED_TAX_ID]",
		Patterns: compile(
			`\b\d{3}-\d{2}-\d{4}\b`,
			`(?i)\b(?:ssn|social security|tax id|tin|itin)\s*(?:number|no|#)?\s*[:#]?\s*\d{3}[- ]?\d{2}[- ]?\d{4}\b`,
			`\b\d{2}-\d{7}\b`,
		),
	},
	{
		Name:           "passwords",
		Description:    "Passwords and passcodes spelled out in text",
		DefaultEnabled: true,
		Token:          "[REDACTED_PASSWORD]",
		Patterns: compile(
			`(?i)\b(?:password|passwd|passphrase|passcode|pwd)\s*(?:is|:|=)\s*\S+`,
			`(?i)\b(?:temporary|temp|one[- ]time|initial)\s+password\s*(?:is|:|=)?\s*\S+`,
		),
	},
	{
		Name:           "api_keys",
		Description:    "API keys, secrets and bearer tokens",
		DefaultEnabled: true,
		Token:          "[REDACTED_KEY]",
		Patterns: compile(
			`(?i)\b(?:api[-_ ]?key|secret|token|bearer|client[-_ ]secret)\s*[:=]\s*[A-Za-z0-9_\-./+]{8,}`,
			`\b(?:sk|pk|rk)_(?:live|test)_[A-Za-z0-9]{8,}\b`,
			`\bAKIA[0-9A-Z]{16}\b`,
			`\bgh[oprsu]_[A-Za-z0-9]{20,}\b`,
			`\beyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\b`,
		),
	},
	{
		Name:           "otp_codes",
		Description:    "One-time passcodes and verification codes",
		DefaultEnabled: true,
		Token:          "[REDACTED_OTP]",
		Patterns: compile(
			`(?i)\b(?:verification|security|login|confirmation|2fa|one[- ]time)\s+code\s*(?:is|:)?\s*\d{4,8}\b`,
			`(?i)\b(?:code|otp|pin)\s*(?:is|:)\s*\d{4,8}\b`,
			`(?i)\buse\s+code\s+\d{4,8}\b`,
		),
	},
	{
		Name:           "phone_numbers",
		Description:    "Phone numbers in common US and international forms",
		DefaultEnabled: true,
		Token:          "[REDACTED_PHONE]",
		Patterns: compile(
			`\(\d{3}\)\s?\d{3}[-. ]?\d{4}\b`,
			`\b\d{3}[-.]\d{3}[-.]\d{4}\b`,
			`\+\d{1,3}[ .-]?\(?\d{1,4}\)?(?:[ .-]?\d{2,4}){2,4}\b`,
		),
	},
	{
		Name:           "physical_addresses",
		Description:    "Street addresses, postal codes and city/state lines",
		DefaultEnabled: true,
		Token:          "[REDACTED_ADDRESS]",
		Patterns:       addressPatterns,
	},
	{
		Name:           "ip_addresses",
		Description:    "IPv4 and IPv6 addresses",
		DefaultEnabled: true,
		Token:          "[REDACTED_IP]",
		Patterns: compile(
			`\b(?:\d{1,3}\.){3}\d{1,3}\b`,
			`\b(?:[0-9A-Fa-f]{1,4}:){3,7}[0-9A-Fa-f]{1,4}\b`,
		),
	},
	{
		Name:           "government_ids",
		Description:    "Passport and driver's license numbers (contextual)",
		DefaultEnabled: true,
		Token:          "[REDACTED_GOV_ID]",
		Patterns: compile(
			`(?i)\bpassport\s*(?:number|no|#)?\s*[:#]?\s*[A-Z0-9]{6,9}\b`,
			`(?i)\b(?:driver'?s?\s+licen[sc]e|dl)\s*(?:number|no|#)?\s*[:#]?\s*[A-Z0-9-]{5,13}\b`,
			`(?i)\bnational\s+id\s*(?:number|no|#)?\s*[:#]?\s*[A-Z0-9-]{5,15}\b`,
		),
	},
	{
		Name:           "token_urls",
		Description:    "URLs carrying credentials or single-use tokens",
		DefaultEnabled: true,
		Token:          "[REDACTED_URL]",
		Patterns: compile(
			`(?i)https?://[^\s<>"']*[?&](?:token|auth|key|apikey|api_key|secret|session|sig|signature|code|reset|verify|confirm|access_token|id_token)=[^\s<>"']+`,
			`(?i)https?://[^\s<>"']*/(?:reset|verify|confirm|unsubscribe|activate|invite)/[A-Za-z0-9_-]{10,}[^\s<>"']*`,
		),
	},
	{
		Name:           "case_numbers",
		Description:    "Support case, ticket and incident identifiers",
		DefaultEnabled: true,
		Token:          "[REDACTED_CASE]",
		Patterns: compile(
			`(?i)\b(?:case|ticket|incident|rma|reference)\s*(?:number|no|id|#)?\s*[:#]\s*[A-Z0-9-]{4,20}\b`,
			`(?i)\b(?:case|ticket|incident)\s*#\s*[A-Z0-9-]{4,20}\b`,
		),
	},
	{
		Name:           "claim_numbers",
		Description:    "Insurance and warranty claim identifiers",
		DefaultEnabled: true,
		Token:          "[REDACTED_CLAIM]",
		Patterns: compile(
			`(?i)\bclaim\s*(?:number|no|id|#)?\s*[:#]\s*[A-Z0-9-]{4,20}\b`,
		),
	},
	{
		Name:           "auth_codes",
		Description:    "Authorization and confirmation codes",
		DefaultEnabled: true,
		Token:          "[REDACTED_AUTH]",
		Patterns: compile(
			`(?i)\b(?:authorization|authorisation|auth)\s*(?:code|number|no|#)?\s*[:#]\s*[A-Z0-9-]{4,20}\b`,
			`(?i)\bconfirmation\s*(?:code|number|no)\s*[:#]?\s*[A-Z0-9-]{4,20}\b`,
		),
	},
	{
		Name:           "device_ids",
		Description:    "IMEIs, serial numbers and MAC addresses",
		DefaultEnabled: true,
		Token:          "[REDACTED_DEVICE]",
		Patterns: compile(
			`\b(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}\b`,
			`(?i)\b(?:imei|serial|device\s+id|udid)\s*(?:number|no|#)?\s*[:#]?\s*[A-Za-z0-9:-]{6,40}\b`,
		),
	},
	{
		Name:           "employee_ids",
		Description:    "Employee and badge numbers (contextual)",
		DefaultEnabled: true,
		Token:          "[REDACTED_EMPLOYEE_ID]",
		Patterns: compile(
			`(?i)\b(?:employee|emp|staff|badge)\s*(?:id|number|no|#)?\s*[:#]\s*[A-Z0-9-]{3,15}\b`,
		),
	},
	{
		Name:           "dates_of_birth",
		Description:    "Dates of birth (contextual)",
		DefaultEnabled: true,
		Token:          "[REDACTED_DOB]",
		Patterns: compile(
			`(?i)\b(?:date\s+of\s+birth|dob|born\s+on|birth\s*date)\s*[:\s]\s*\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`,
			`(?i)\b(?:date\s+of\s+birth|dob|born\s+on|birth\s*date)\s*[:\s]\s*(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4}\b`,
		),
	},
	{
		Name:           "ages",
		Description:    "Stated ages",
		DefaultEnabled: true,
		Token:          "[REDACTED_AGE]",
		Patterns: compile(
			`(?i)\b(?:age|aged)\s*[:\s]\s*\d{1,3}\b`,
			`(?i)\b\d{1,3}[- ]years?[- ]old\b`,
		),
	},
	{
		Name:           "member_ids",
		Description:    "Membership, subscriber and policy numbers",
		DefaultEnabled: true,
		Token:          "[REDACTED_MEMBER_ID]",
		Patterns: compile(
			`(?i)\b(?:member|membership|subscriber|policy|loyalty)\s*(?:id|number|no|#)?\s*[:#]\s*[A-Z0-9-]{4,20}\b`,
		),
	},
	{
		Name:           "vehicle_ids",
		Description:    "VINs and license plates",
		DefaultEnabled: true,
		Token:          "[REDACTED_VEHICLE]",
		Patterns: compile(
			`\b[A-HJ-NPR-Z0-9]{11}\d{6}\b`,
			`(?i)\b(?:vin|license\s+plate|plate\s+number)\s*[:#]?\s*[A-Z0-9-]{2,17}\b`,
		),
	},
	{
		Name:           "medical_ids",
		Description:    "Medical record and provider numbers",
		DefaultEnabled: true,
		Token:          "[REDACTED_MEDICAL_ID]",
		Patterns: compile(
			`(?i)\b(?:mrn|medical\s+record|patient)\s*(?:id|number|no|#)?\s*[:#]\s*[A-Z0-9-]{4,15}\b`,
			`(?i)\bnpi\s*[:#]?\s*\d{10}\b`,
		),
	},

	// Convenience categories: useful for aggressive anonymization, too
	// destructive for the default export.
	{
		Name:           "email_addresses",
		Description:    "Any bare email address in the body",
		DefaultEnabled: false,
		Token:          "[REDACTED_EMAIL]",
		Patterns: compile(
			`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`,
		),
	},
	{
		Name:           "order_numbers",
		Description:    "Retail order identifiers",
		DefaultEnabled: false,
		Token:          "[REDACTED_ORDER]",
		Patterns: compile(
			`\b\d{3}-\d{7}-\d{7}\b`,
			`(?i)\border\s*(?:number|no|id|#)?\s*[:#]\s*[A-Z0-9-]{4,22}\b`,
		),
	},
	{
		Name:           "tracking_numbers",
		Description:    "Carrier tracking numbers",
		DefaultEnabled: false,
		Token:          "[REDACTED_TRACKING]",
		Patterns: compile(
			`\b1Z[0-9A-Z]{16}\b`,
			`\b9[234]\d{20,24}\b`,
			`(?i)\btracking\s*(?:number|no|#)?\s*[:#]?\s*[A-Z0-9]{8,30}\b`,
		),
	},
	{
		Name:           "booking_references",
		Description:    "Travel booking and reservation codes",
		DefaultEnabled: false,
		Token:          "[REDACTED_BOOKING]",
		Patterns: compile(
			`(?i)\b(?:booking|reservation|itinerary|pnr)\s*(?:reference|ref|number|no|code|#)?\s*[:#]?\s*[A-Z0-9]{5,10}\b`,
		),
	},
	{
		Name:           "financial_amounts",
		Description:    "Currency amounts",
		DefaultEnabled: false,
		Token:          "[REDACTED_AMOUNT]",
		Patterns: compile(
			"[$€£]\\s?\\d[\\d,]*(?:\\.\\d{2})?",
			`(?i)\b(?:USD|EUR|GBP|CAD|AUD)\s?\d[\d,]*(?:\.\d{2})?\b`,
		),
	},
	{
		Name:           "urls",
		Description:    "Every URL, token-bearing or not",
		DefaultEnabled: false,
		Token:          "[REDACTED_URL]",
		Patterns: compile(
			`(?i)\bhttps?://[^\s<>"']+`,
		),
	},
}

func compile(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}
