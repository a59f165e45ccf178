// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

// Package password holds the stateless password utilities: cryptographically
// strong generation with character-class coverage, and deterministic strength
// scoring. Both are pure and safe to call concurrently.
package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/pivault/pivault/models"
)

// Class alphabets. The symbol set matches the one the strength scorer counts
// as "special", so generated passwords always score their symbol point.
const (
	lowerAlphabet  = "abcdefghijklmnopqrstuvwxyz"
	upperAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitAlphabet  = "0123456789"
	symbolAlphabet = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// ambiguousRunes are visually confusable characters removed when the
	// policy asks for it: zero/capital-o, one/lowercase-L/capital-i, pipe.
	ambiguousRunes = "0O1lI|"
)

// Generate produces a random password satisfying policy.
//
// The working alphabet is the union of the selected class alphabets,
// optionally stripped of ambiguous characters. Every character is drawn
// independently and uniformly from the alphabet using crypto/rand. A policy
// with no class selected is silently corrected to lowercase-only; a length
// outside [8,128] is clamped to the nearest bound.
//
// Coverage: after the initial draw, one random position per selected class is
// overwritten with a random member of that class. When two classes pick the
// same position the later overwrite wins, so in rare cases an earlier class
// is only statistically present. This keeps placement random instead of
// deterministic, which is the accepted trade-off.
func Generate(policy models.PasswordPolicy) (string, error) {
	length := policy.Length
	if length < models.MinPasswordLength {
		length = models.MinPasswordLength
	}
	if length > models.MaxPasswordLength {
		length = models.MaxPasswordLength
	}

	if !policy.IncludeUpper && !policy.IncludeLower && !policy.IncludeDigits && !policy.IncludeSymbols {
		policy.IncludeLower = true
	}

	var classes []string
	if policy.IncludeLower {
		classes = append(classes, classAlphabet(lowerAlphabet, policy.ExcludeAmbiguous))
	}
	if policy.IncludeUpper {
		classes = append(classes, classAlphabet(upperAlphabet, policy.ExcludeAmbiguous))
	}
	if policy.IncludeDigits {
		classes = append(classes, classAlphabet(digitAlphabet, policy.ExcludeAmbiguous))
	}
	if policy.IncludeSymbols {
		classes = append(classes, classAlphabet(symbolAlphabet, policy.ExcludeAmbiguous))
	}

	alphabet := strings.Join(classes, "")

	out := make([]byte, length)
	for i := range out {
		c, err := randByte(alphabet)
		if err != nil {
			return "", fmt.Errorf("draw password character: %w", err)
		}
		out[i] = c
	}

	// Coverage pass: one random position per class.
	for _, class := range classes {
		pos, err := randIndex(length)
		if err != nil {
			return "", fmt.Errorf("draw coverage position: %w", err)
		}
		c, err := randByte(class)
		if err != nil {
			return "", fmt.Errorf("draw coverage character: %w", err)
		}
		out[pos] = c
	}

	return string(out), nil
}

func classAlphabet(alphabet string, excludeAmbiguous bool) string {
	if !excludeAmbiguous {
		return alphabet
	}
	var b strings.Builder
	for _, r := range alphabet {
		if !strings.ContainsRune(ambiguousRunes, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// randByte returns one uniformly random character of alphabet, drawn from the
// OS CSPRNG. math/rand is never used here.
func randByte(alphabet string) (byte, error) {
	i, err := randIndex(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func randIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
