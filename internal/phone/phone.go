package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrTooShort is returned when the input does not contain enough digits to be
// a phone number. Blank input counts as zero digits.
var ErrTooShort = errors.New("not enough digits for a phone number")

// Normalize reduces raw user input to a canonical phone string: an optional
// leading + followed only by digits. Everything except digits and a leading +
// is stripped. Inputs with fewer than 7 digits are rejected. Inputs with 10 or
// more digits and no + are assumed to be international numbers missing their
// prefix and get one prepended; shorter digit runs pass through unchanged.
// The prefix assumption can misfire on domestic numbers without a country
// code, but it matches what callers already store and expect.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) < 7 {
		return "", ErrTooShort
	}
	if strings.HasPrefix(raw, "+") || len(digits) >= 10 {
		return "+" + digits, nil
	}
	return digits, nil
}

// Pretty renders a canonical phone for humans, e.g. in the notification
// email. Numbers that do not parse as valid international numbers are
// returned as-is.
func Pretty(canonical string) string {
	num, err := phonenumbers.Parse(canonical, "")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return canonical
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
