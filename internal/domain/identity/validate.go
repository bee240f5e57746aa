package identity

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateName checks a first or last name: at least two characters and no
// digits.
func ValidateName(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	if strings.IndexFunc(s, unicode.IsDigit) >= 0 {
		return errors.New("cannot contain numbers")
	}
	if utf8.RuneCountInString(s) < 2 {
		return errors.New("must have at least 2 characters")
	}
	return nil
}

// ValidateNationalID checks a national id: digits only, at least six.
func ValidateNationalID(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	if !allDigits(s) {
		return errors.New("must contain only numbers")
	}
	if len(s) < 6 {
		return errors.New("must have at least 6 digits")
	}
	return nil
}

// ValidateSpecialty rejects empty, purely numeric and too short values.
func ValidateSpecialty(s string) error {
	if s == "" {
		return errors.New("cannot be empty")
	}
	if allDigits(s) {
		return errors.New("cannot be only numbers")
	}
	if utf8.RuneCountInString(s) < 3 {
		return errors.New("must have at least 3 characters")
	}
	return nil
}

// ValidatePhone accepts an empty value or digits only.
func ValidatePhone(s string) error {
	if s != "" && !allDigits(s) {
		return errors.New("must contain only numbers")
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
