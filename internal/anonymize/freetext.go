package anonymize

import (
	"regexp"
)

// Free-text redaction patterns, applied in order. Emails must run before the
// looser phone and name patterns so an address is never partially matched by
// them; SSN-shaped digits must run before the generic phone pattern.
//
// This is best-effort redaction, not a guarantee of complete
// de-identification.
var freeTextPatterns = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`), "[EMAIL]"},
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "[SSN]"},
	{regexp.MustCompile(`\+?\d[\d\s\-()]{7,}\d`), "[PHONE]"},
	{regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`), "[PERSON_NAME]"},
}

// FreeText applies the ordered redaction patterns to arbitrary text,
// replacing email addresses, SSN-shaped digit groups, phone-shaped numbers,
// and two-capitalized-word sequences with placeholder tags.
func (a *Anonymizer) FreeText(text string) string {
	for _, p := range freeTextPatterns {
		text = p.pattern.ReplaceAllString(text, p.replacement)
	}
	return text
}
