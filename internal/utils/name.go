package utils

import "strings"

// TitleCase trims the input and capitalizes the first letter of each
// whitespace-separated token, lowercasing the rest.  The transform is
// idempotent: applying it twice yields the same result as once.
func TitleCase(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		r := []rune(strings.ToLower(f))
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		fields[i] = string(r)
	}
	return strings.Join(fields, " ")
}
