// Package compliance supplies the disclosure metadata attached to every
// calculator and advisor response, and the PII redaction applied to audit
// copies of user messages. Meta maps are annotations only; they carry no
// business logic.
package compliance

import "regexp"

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s\-]{7,}\d`)
	// Account numbers, NIDs, card numbers: any digit run long enough to
	// identify someone.
	longDigits = regexp.MustCompile(`\d{6,}`)
)

// AIMeta returns the disclosures attached to advisor responses.
func AIMeta() map[string]string {
	return map[string]string{
		"disclosure": "educational_only",
		"source":     "ai_advisor",
	}
}

// LoanMeta returns the disclosures attached to loan pre-assessments.
func LoanMeta() map[string]string {
	return map[string]string{
		"disclosure": "educational_only",
		"note":       "estimates_only_not_an_offer",
	}
}

// ProjectionMeta returns the disclosures attached to inflation forecasts.
func ProjectionMeta() map[string]string {
	return map[string]string{
		"disclosure": "educational_only",
		"note":       "projection_not_a_guarantee",
	}
}

// CalcMeta returns the disclosures attached to plain calculator results.
func CalcMeta() map[string]string {
	return map[string]string{
		"disclosure": "educational_only",
	}
}

// RedactPII strips emails, phone numbers, and long digit runs from text
// before it is written to the audit trail.
func RedactPII(text string) string {
	redacted := emailPattern.ReplaceAllString(text, "[EMAIL]")
	redacted = phonePattern.ReplaceAllString(redacted, "[PHONE]")
	redacted = longDigits.ReplaceAllString(redacted, "[NUMBER]")
	return redacted
}
