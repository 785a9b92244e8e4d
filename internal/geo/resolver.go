// Package geo resolves free-form US state names and abbreviations to FIPS
// state codes.
package geo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidLocation is wrapped by every resolution failure.
var ErrInvalidLocation = errors.New("invalid location")

type InvalidLocationError struct {
	Input string
}

func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("Invalid state: %s. Please use full state name or 2-letter abbreviation.", e.Input)
}

func (e *InvalidLocationError) Unwrap() error {
	return ErrInvalidLocation
}

var fipsPattern = regexp.MustCompile(`^\d{2}$`)

// ResolveStateCode returns the FIPS code for a state given as a code, a
// 2-letter abbreviation or a full name in any case.
func ResolveStateCode(input string) (string, error) {
	if fipsPattern.MatchString(input) {
		return input, nil
	}

	if name, ok := stateAbbreviations[strings.ToUpper(input)]; ok {
		return stateCodes[name], nil
	}

	for name, code := range stateCodes {
		if strings.EqualFold(name, input) {
			return code, nil
		}
	}

	return "", &InvalidLocationError{Input: input}
}

// StateName returns the full name for a FIPS code, abbreviation or name.
func StateName(input string) (string, bool) {
	code, err := ResolveStateCode(input)
	if err != nil {
		return "", false
	}
	for name, c := range stateCodes {
		if c == code {
			return name, true
		}
	}
	return "", false
}
