// Package phone normalizes clinic phone numbers.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is assumed for numbers written without a country code.
const DefaultRegion = "RU"

var ErrInvalid = errors.New("invalid phone number")

// Normalize parses s and returns it in E.164 form, e.g. "+79616448504".
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalid
	}
	num, err := phonenumbers.Parse(s, DefaultRegion)
	if err != nil {
		return "", ErrInvalid
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalid
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func IsValid(s string) bool {
	_, err := Normalize(s)
	return err == nil
}
