package utils

import (
	"regexp"
	"strings"
)

var (
	phoneRegex    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	nonPhoneChars = regexp.MustCompile(`[^\d+]`)
)

func IsValidPhone(phone string) bool {
	cleaned := nonPhoneChars.ReplaceAllString(phone, "")
	return phoneRegex.MatchString(cleaned)
}

// NormalizePhone strips formatting characters and ensures a leading +,
// prepending the default country code for bare national numbers.
func NormalizePhone(phone string) string {
	normalized := nonPhoneChars.ReplaceAllString(phone, "")
	if normalized == "" {
		return normalized
	}

	if !strings.HasPrefix(normalized, "+") {
		if len(normalized) == 10 {
			normalized = DefaultCountryCode + normalized
		} else {
			normalized = "+" + normalized
		}
	}

	return normalized
}
