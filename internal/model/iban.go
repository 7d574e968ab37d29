package model

import "strings"

const (
	IBANMinLength = 15
	IBANMaxLength = 34
)

// IBAN is a normalized, checksum-valid account number.
type IBAN string

// NormalizeIBAN removes spaces and upper-cases s.
func NormalizeIBAN(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// ParseIBAN normalizes s and verifies length and the mod-97 checksum.
func ParseIBAN(s string) (IBAN, error) {
	n := NormalizeIBAN(s)
	if !ValidIBAN(n) {
		return "", ErrInvalidIBAN
	}
	return IBAN(n), nil
}

// ValidIBAN reports whether s (already normalized) is a valid IBAN.
//
// The first four characters move to the end, letters become 10..35 and the
// resulting number must leave remainder 1 when divided by 97.
func ValidIBAN(s string) bool {
	if len(s) < IBANMinLength || len(s) > IBANMaxLength {
		return false
	}
	if !isLetter(s[0]) || !isLetter(s[1]) || !isDigit(s[2]) || !isDigit(s[3]) {
		return false
	}

	rearranged := s[4:] + s[:4]
	remainder := 0
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case isDigit(c):
			remainder = (remainder*10 + int(c-'0')) % 97
		case isLetter(c):
			v := int(c-'A') + 10
			remainder = (remainder*100 + v) % 97
		default:
			return false
		}
	}
	return remainder == 1
}

func (i IBAN) String() string { return string(i) }

// CountryCode returns the two-letter country prefix.
func (i IBAN) CountryCode() string {
	if len(i) < 2 {
		return ""
	}
	return string(i[:2])
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'A' && c <= 'Z' }
