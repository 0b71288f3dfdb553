// Package redact strips sensitive values from strings before they reach
// logs or error responses. The marketplace handles phone numbers, bank
// details and tokens, none of which may appear in log output verbatim.
package redact

import (
	"regexp"
	"sync"
)

// Redaction placeholders.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedContactPlaceholder    = "[REDACTED_CONTACT]"
	RedactedBankPlaceholder       = "[REDACTED_BANK_DETAIL]"
)

var (
	// Connection strings with inline credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|redis)://[^@\s]+@`)

	// password=..., secret:... style key/value credentials.
	credentialRegex = regexp.MustCompile(`(?i)(password|passwd|pwd|secret|jwt[_-]?secret)([=:\s]['"]?)[^'"&\s]{3,}`)

	// Bearer headers and raw JWTs.
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+=*`)
	jwtRegex    = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// One-time passwords quoted in messages ("otp 123456", "code: 4821").
	otpRegex = regexp.MustCompile(`(?i)\b(otp|code)([=:\s]+)\d{4,8}\b`)

	// Contact details.
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRegex = regexp.MustCompile(`(\+?\d[\d\s-]{8,14}\d)`)

	// Payout details collected during paravet onboarding.
	ifscRegex = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)
	upiRegex  = regexp.MustCompile(`\b[\w.-]{2,}@[a-z]{2,}\b`)
	bankRegex = regexp.MustCompile(`(?i)(account[_\s-]?(number|no)|acct)([=:\s]+)\d{6,18}\b`)

	// SQL fragments leaking schema details.
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"$]+)?`,
	)

	// Order matters: the broad UPI pattern would otherwise eat the tail of
	// an already-redacted email placeholder, so emails run first.
	orderedPatterns = []*regexp.Regexp{
		dbConnRegex, credentialRegex, bearerRegex, jwtRegex, otpRegex,
		emailRegex, phoneRegex, ifscRegex, bankRegex, upiRegex, sqlRegex,
	}

	placeholders = map[*regexp.Regexp]string{
		dbConnRegex:     RedactedCredentialPlaceholder,
		credentialRegex: RedactedCredentialPlaceholder,
		bearerRegex:     RedactedTokenPlaceholder,
		jwtRegex:        RedactedTokenPlaceholder,
		otpRegex:        "[REDACTED_OTP]",
		emailRegex:      RedactedContactPlaceholder,
		phoneRegex:      RedactedContactPlaceholder,
		ifscRegex:       RedactedBankPlaceholder,
		upiRegex:        RedactedBankPlaceholder,
		bankRegex:       RedactedBankPlaceholder,
		sqlRegex:        "[REDACTED_SQL]",
	}

	mu sync.RWMutex
)

// String redacts sensitive values from the input.
func String(input string) string {
	if input == "" {
		return input
	}

	mu.RLock()
	defer mu.RUnlock()

	result := input
	for _, pattern := range orderedPatterns {
		placeholder := RedactionPlaceholder
		if ph, ok := placeholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}
	return result
}

// Error redacts an error's message. Nil errors yield the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
