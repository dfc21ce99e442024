// Package classify assigns transaction types and merchant labels to
// parsed statement rows using ordered heuristic rules.
package classify

import (
	"regexp"
	"strings"
)

// maxMerchantLen caps the extracted merchant label.
const maxMerchantLen = 50

// merchantPatterns strip common bank prefixes from free-text
// descriptions and capture the merchant-like remainder. Order matters:
// the first pattern whose capture group is non-empty wins.
var merchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^recurring withdrawal\s+(?:debit card\s+)?(.+)$`),
	regexp.MustCompile(`(?i)^withdrawal\s+(?:debit card\s+|pos\s+|ach\s+)?(.+)$`),
	regexp.MustCompile(`(?i)^deposit\s+(?:ach\s+)?(.+)$`),
	regexp.MustCompile(`(?i)^(?:online\s+)?transfer\s+(?:to|from)\s+(.+)$`),
	regexp.MustCompile(`(?i)^debit card\s+(?:purchase\s+)?(.+)$`),
	regexp.MustCompile(`(?i)^pos\s+(?:purchase\s+)?(.+)$`),
	regexp.MustCompile(`(?i)^ach\s+(?:debit\s+|credit\s+)?(.+)$`),
}

// citySuffix trims trailing city/state noise that card networks append
// after the merchant name.
var citySuffix = regexp.MustCompile(`(?i)\s+(?:new york|brooklyn|jersey city|hoboken|seattle|san francisco)(?:\s+[A-Z]{2})?$`)

// ExtractMerchant derives a short merchant label from a bank
// description. This is best-effort: unseen formats fall back to the raw
// description, truncated.
func ExtractMerchant(description string) string {
	desc := strings.TrimSpace(description)

	for _, pattern := range merchantPatterns {
		m := pattern.FindStringSubmatch(desc)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if candidate == "" {
			continue
		}
		return truncate(citySuffix.ReplaceAllString(candidate, ""))
	}

	return truncate(citySuffix.ReplaceAllString(desc, ""))
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxMerchantLen {
		return strings.TrimSpace(s[:maxMerchantLen])
	}
	return s
}
