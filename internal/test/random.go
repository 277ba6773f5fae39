package test

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	slugAlphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
	asciiAlphabet = slugAlphabet + "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// RandomASCIIString returns an alphanumeric string with a length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	return randomFrom(asciiAlphabet, minLen, maxLen)
}

// RandomSlug returns a lowercase dash separated slug such as "kaos-7f3k".
func RandomSlug() string {
	return randomFrom(slugAlphabet[:26], 4, 8) + "-" + randomFrom(slugAlphabet, 4, 4)
}

// RandomEmail returns a unique looking customer address.
func RandomEmail() string {
	return fmt.Sprintf("%s@example.com", strings.ToLower(RandomASCIIString(6, 10)))
}

func randomFrom(alphabet string, minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + rand.IntN(maxLen-minLen+1)
	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}
