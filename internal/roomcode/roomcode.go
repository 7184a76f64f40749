// Package roomcode generates and checks the short codes used to join rooms.
package roomcode

import (
	"math/rand/v2"
	"regexp"
)

// Alphabet omits I, O, 0 and 1, which are easily confused when read aloud.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Length is the number of characters in a room code.
const Length = 6

// Codes typed by a client must look like this before any lookup happens.
var inputPattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// Generate returns a random code. Not suitable as a secret.
func Generate() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = Alphabet[rand.IntN(len(Alphabet))]
	}
	return string(b)
}

// WellFormed reports whether s is acceptable join input.
func WellFormed(s string) bool {
	return inputPattern.MatchString(s)
}

// Valid reports whether s could have been produced by Generate.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlphabet(s[i]) {
			return false
		}
	}
	return true
}

func isAlphabet(c byte) bool {
	for i := 0; i < len(Alphabet); i++ {
		if Alphabet[i] == c {
			return true
		}
	}
	return false
}
