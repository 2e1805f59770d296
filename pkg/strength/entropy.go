// SPDX-License-Identifier: MIT

// Package strength scores passwords with a fixed rule set, a character-class
// entropy model, and blacklist/breach membership checks.
package strength

import (
	"math"
	"strings"
	"unicode"
)

// Symbols is the special character alphabet recognized by both the entropy
// model and the symbol rule. 20 characters.
const Symbols = "!@#$%^&*(),.?\":{}|<>"

// Entropy estimates bits of randomness as log2(alphabet) * length, where the
// alphabet is the sum of every character class present in the password. Each
// class counts once, no matter how many of its characters appear.
func Entropy(password string) float64 {
	alphabet := 0
	var hasLower, hasUpper, hasDigit, hasSymbol, hasSpace bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(Symbols, r):
			hasSymbol = true
		case unicode.IsSpace(r):
			hasSpace = true
		}
	}

	if hasLower {
		alphabet += 26
	}
	if hasUpper {
		alphabet += 26
	}
	if hasDigit {
		alphabet += 10
	}
	if hasSymbol {
		alphabet += len(Symbols)
	}
	if hasSpace {
		alphabet++
	}

	// Empty alphabet would make log2 blow up.
	if alphabet == 0 {
		return 0
	}

	entropy := math.Log2(float64(alphabet)) * float64(len([]rune(password)))
	return math.Round(entropy*100) / 100
}
