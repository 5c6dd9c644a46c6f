package registration

import "regexp"

// FiscalCodeCheck reports the three independent validation rules for an
// Italian fiscal code so the form can show granular pass/fail per rule.
type FiscalCodeCheck struct {
	ValidLength   bool `json:"valid_length"`
	ValidFormat   bool `json:"valid_format"`
	ValidChecksum bool `json:"valid_checksum"`
}

// Valid reports whether every rule passed.
func (c FiscalCodeCheck) Valid() bool {
	return c.ValidLength && c.ValidFormat && c.ValidChecksum
}

var fiscalCodePattern = regexp.MustCompile(
	`^[A-Za-z]{6}[0-9A-Za-z]{2}[A-Za-z][0-9A-Za-z]{2}[A-Za-z][0-9A-Za-z]{3}[A-Za-z]$`)

// Contribution tables for the mod-26 check character, indexed by the
// character's alphanumeric ordinal (0-9 then A-Z). Defined by the Italian
// fiscal-code standard: characters in odd 1-indexed positions use oddValues,
// even positions use evenValues.
var oddValues = [36]int{
	1, 0, 5, 7, 9, 13, 15, 17, 19, 21,
	1, 0, 5, 7, 9, 13, 15, 17, 19, 21, 2, 4, 18, 20, 11, 3, 6, 8, 12, 14, 16, 10, 22, 25, 24, 23,
}

var evenValues = [36]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25,
}

// alphanumOrdinal maps '0'-'9' to 0-9 and 'A'-'Z' to 10-35. Returns -1 for
// anything else; callers only reach it after the format check.
func alphanumOrdinal(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'A' && ch <= 'Z':
		return int(ch-'A') + 10
	case ch >= 'a' && ch <= 'z':
		return int(ch-'a') + 10
	default:
		return -1
	}
}

// ValidateFiscalCode runs the three rules on a candidate code. The checksum
// is evaluated only when length and format both hold.
func ValidateFiscalCode(code string) FiscalCodeCheck {
	var check FiscalCodeCheck

	check.ValidLength = len(code) == 16
	if !check.ValidLength {
		return check
	}

	check.ValidFormat = fiscalCodePattern.MatchString(code)
	if !check.ValidFormat {
		return check
	}

	sum := 0
	for i := 0; i < 15; i++ {
		ord := alphanumOrdinal(code[i])
		if ord < 0 {
			return check
		}
		// Positions are 1-indexed in the standard: index 0 is position 1 (odd).
		if i%2 == 0 {
			sum += oddValues[ord]
		} else {
			sum += evenValues[ord]
		}
	}

	expected := byte('A' + sum%26)
	last := code[15]
	if last >= 'a' && last <= 'z' {
		last -= 'a' - 'A'
	}
	check.ValidChecksum = last == expected
	return check
}
