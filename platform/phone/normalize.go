// Package phone parses customer phone numbers with libphonenumber.
// Numbers without a country code are read as Belarusian.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when a number is written without a country code.
const DefaultRegion = "BY"

func parse(input, region string) (*phonenumbers.PhoneNumber, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, false
	}
	number, err := phonenumbers.Parse(trimmed, region)
	if err != nil {
		return nil, false
	}
	return number, true
}

// NormalizeE164 returns the number in E.164 form, or the trimmed input when it
// is not a valid number.
func NormalizeE164(input string) string {
	number, ok := parse(input, DefaultRegion)
	if !ok || !phonenumbers.IsValidNumber(number) {
		return strings.TrimSpace(input)
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// IsValidForRegion reports whether input is a valid number assigned to
// region (ISO 3166-1 alpha-2).
func IsValidForRegion(input, region string) bool {
	number, ok := parse(input, region)
	return ok && phonenumbers.IsValidNumberForRegion(number, region)
}
