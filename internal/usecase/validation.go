package usecase

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// ValidateOrderNumber checks order number using Luhn algorithm.
func ValidateOrderNumber(number string) bool {
	if number == "" {
		return false
	}

	var sum int
	var alt bool
	for i := len(number) - 1; i >= 0; i-- {
		r := rune(number[i])
		if !unicode.IsDigit(r) {
			return false
		}
		digit := int(r - '0')
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

// luhnCheckDigit returns the digit that makes payload+digit pass ValidateOrderNumber.
func luhnCheckDigit(payload string) int {
	var sum int
	alt := true
	for i := len(payload) - 1; i >= 0; i-- {
		digit := int(payload[i] - '0')
		if alt {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alt = !alt
	}
	return (10 - sum%10) % 10
}

// GenerateOrderNumber builds YYYYMMDD + 7 random digits + Luhn check digit.
func GenerateOrderNumber(now time.Time) string {
	payload := fmt.Sprintf("%s%07d", now.Format("20060102"), rand.IntN(10_000_000))
	return fmt.Sprintf("%s%d", payload, luhnCheckDigit(payload))
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a URL segment.
func Slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(slug, "-")
}
