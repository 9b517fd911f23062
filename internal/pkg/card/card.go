// Package card validates payment card details before an order is created.
// Validation failures never reach storage or the network.
package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ErrInvalid is the base error wrapped by every validation failure.
var ErrInvalid = errors.New("invalid card details")

// Details carries the card fields entered at checkout.
type Details struct {
	Number string
	Expiry string // MM/YY
	CVC    string
	Holder string
}

// Validate checks all card fields against the given current time.
func Validate(d Details, now time.Time) error {
	if err := validateNumber(d.Number); err != nil {
		return err
	}
	if err := validateExpiry(d.Expiry, now); err != nil {
		return err
	}
	if err := validateCVC(d.CVC); err != nil {
		return err
	}
	if len(strings.TrimSpace(d.Holder)) < 3 {
		return fmt.Errorf("%w: cardholder name too short", ErrInvalid)
	}
	return nil
}

func validateNumber(number string) error {
	stripped := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, number)

	if len(stripped) < 13 || len(stripped) > 16 {
		return fmt.Errorf("%w: card number must be 13-16 digits", ErrInvalid)
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%w: card number must contain only digits", ErrInvalid)
		}
	}
	if !luhn(stripped) {
		return fmt.Errorf("%w: card number checksum failed", ErrInvalid)
	}
	return nil
}

func validateExpiry(expiry string, now time.Time) error {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return fmt.Errorf("%w: expiry must be MM/YY", ErrInvalid)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("%w: expiry month out of range", ErrInvalid)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return fmt.Errorf("%w: expiry year must be two digits", ErrInvalid)
	}
	year += 2000

	// Card stays valid through the end of its expiry month.
	if year < now.Year() || (year == now.Year() && time.Month(month) < now.Month()) {
		return fmt.Errorf("%w: card expired", ErrInvalid)
	}
	return nil
}

func validateCVC(cvc string) error {
	if len(cvc) < 3 || len(cvc) > 4 {
		return fmt.Errorf("%w: CVC must be 3-4 digits", ErrInvalid)
	}
	for _, r := range cvc {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%w: CVC must contain only digits", ErrInvalid)
		}
	}
	return nil
}

func luhn(number string) bool {
	var sum int
	var alt bool
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if alt {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alt = !alt
	}
	return sum%10 == 0
}
