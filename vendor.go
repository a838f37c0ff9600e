package networth

import (
	"regexp"
	"strings"
)

var (
	vendorPrefixes = []string{"payment to ", "payment from "}
	vendorSuffixes = []string{" llc", " inc", " corp", " co"}

	storeNumberRe   = regexp.MustCompile(`\bstore\s*#?\s*\d+\b`)
	hashNumberRe    = regexp.MustCompile(`#\d+`)
	trailingIDRe    = regexp.MustCompile(` \d{4,}$`)
	trailingDateRe  = regexp.MustCompile(` \d{1,2}-\d{1,2}$`)
	longNumberRe    = regexp.MustCompile(`\b\d{5,}\b`)
	alphanumTokenRe = regexp.MustCompile(`\b[a-z0-9]{8,}\b`)
	hasDigitRe      = regexp.MustCompile(`\d`)
	hasLetterRe     = regexp.MustCompile(`[a-z]`)
	punctuationRe   = regexp.MustCompile(`[^\w\s]`)
	spacesRe        = regexp.MustCompile(`\s+`)
)

// BaseVendor reduces a transaction description to a merchant key, e.g.
// "STARBUCKS #4921" and "Starbucks Store 99812" are both "starbucks".
//
// It is a grouping heuristic, not a merchant resolver. Payment rails
// ("venmo") are not vendors and yield "".
func BaseVendor(description string) string {
	v := strings.ToLower(description)

	for _, p := range vendorPrefixes {
		v = strings.TrimPrefix(v, p)
	}
	for _, s := range vendorSuffixes {
		v = strings.TrimSuffix(v, s)
	}

	// store numbers, transaction ids and dates.
	v = storeNumberRe.ReplaceAllString(v, "")
	v = hashNumberRe.ReplaceAllString(v, "")
	v = trailingIDRe.ReplaceAllString(v, "")
	v = trailingDateRe.ReplaceAllString(v, "")
	v = longNumberRe.ReplaceAllString(v, "")
	v = alphanumTokenRe.ReplaceAllStringFunc(v, func(token string) string {
		if hasDigitRe.MatchString(token) && hasLetterRe.MatchString(token) {
			return ""
		}
		return token
	})

	v = punctuationRe.ReplaceAllString(v, "")
	v = spacesRe.ReplaceAllString(v, " ")
	v = strings.TrimSpace(v)

	if v == "venmo" {
		return ""
	}
	return v
}
