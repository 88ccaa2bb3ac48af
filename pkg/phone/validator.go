// Package phone wraps libphonenumber parsing for lead contact-quality
// checks.
package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is assumed when a number carries no country code and the
// caller supplies no region hint.
const DefaultRegion = "US"

// Validator validates and normalizes lead phone numbers.
type Validator struct {
	defaultRegion string
}

// NewValidator creates a validator with the default region.
func NewValidator() *Validator {
	return &Validator{defaultRegion: DefaultRegion}
}

// IsValid reports whether the number parses and is valid for its region.
// region may be empty, in which case the default region is assumed.
func (v *Validator) IsValid(number, region string) bool {
	if number == "" {
		return false
	}
	parsed, err := phonenumbers.Parse(number, v.region(region))
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}

// Normalize returns the number in E.164 format, or an error when the number
// cannot be parsed or is invalid.
func (v *Validator) Normalize(number, region string) (string, error) {
	if number == "" {
		return "", fmt.Errorf("phone number cannot be empty")
	}

	parsed, err := phonenumbers.Parse(number, v.region(region))
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

func (v *Validator) region(region string) string {
	if region == "" {
		return v.defaultRegion
	}
	return region
}
