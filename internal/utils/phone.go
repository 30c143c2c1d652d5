package utils

import (
	"regexp"
	"strings"
)

// indianMobile matches a normalized Indian mobile number: the +91
// country code, a leading digit in 6-9, then nine more digits.
var indianMobile = regexp.MustCompile(`^\+91[6-9]\d{9}$`)

// NormalizePhone canonicalizes a WhatsApp number the way the booking
// form accepts it.  Whitespace and dashes are stripped, then the +91
// prefix is supplied when the input is a bare 10-digit national number
// or starts with 91 without the plus.  The input is returned as-is
// (minus separators) when no rule applies; ValidatePhone decides
// whether the result is acceptable.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(" ", "", "-", "", "\t", "").Replace(s)
	if strings.HasPrefix(s, "+91") {
		return s
	}
	if strings.HasPrefix(s, "91") && len(s) == 12 {
		return "+" + s
	}
	if len(s) == 10 {
		return "+91" + s
	}
	return s
}

// ValidatePhone reports whether a normalized number is a valid Indian
// mobile number.
func ValidatePhone(normalized string) bool {
	return indianMobile.MatchString(normalized)
}
