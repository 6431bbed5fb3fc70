package notifications

import "strings"

const DefaultCountryCode = "62"

// mobileTrunkDigit is the first digit of a local mobile number once the
// leading 0 is dropped (08xx -> 8xx).
const mobileTrunkDigit = '8'

// NormalizePhone reduces a free-form phone number to digits in international
// form without "+": 0812... and 812... both become <cc>812...
func NormalizePhone(raw, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	switch {
	case digits == "":
		return ""
	case strings.HasPrefix(digits, "0"):
		return countryCode + digits[1:]
	case strings.HasPrefix(digits, countryCode):
		return digits
	case digits[0] == mobileTrunkDigit:
		return countryCode + digits
	default:
		return digits
	}
}
