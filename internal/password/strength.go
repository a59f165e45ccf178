// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package password

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pivault/pivault/models"
)

// Feedback codes returned by Score. Stable identifiers, localized by the
// presentation layer.
const (
	FeedbackEmptyPassword       = "empty_password"
	FeedbackTooShort            = "password_too_short"
	FeedbackAddLowercase        = "add_lowercase"
	FeedbackAddUppercase        = "add_uppercase"
	FeedbackAddNumbers          = "add_numbers"
	FeedbackAddSpecial          = "add_special"
	FeedbackAvoidCommonPatterns = "avoid_common_patterns"
)

// specialRunes is the set counted as "special" characters, aligned with the
// generator's symbol alphabet plus a few extras users type by hand.
const specialRunes = "!@#$%^&*()_+-=[]{}|;':\",./<>?"

// commonPatterns are substrings that immediately mark a password as weak.
// Matched case-insensitively anywhere in the password.
var commonPatterns = []string{"123", "abc", "qwerty", "password", "admin", "111", "aaa"}

// Score rates a password on a fixed additive rule table and reports symbolic
// feedback for every missed rule. The result is deterministic: the same input
// always yields the same score and the same feedback order.
//
// Rules, in evaluation order: +1 each for length ≥ 8/12/16; +1 each for
// containing a lowercase letter, an uppercase letter, a digit, and a special
// character; −2 when the lowercased password contains a known common pattern.
// The final score is clamped to [0,7]. The empty password short-circuits to
// {0, [empty_password]} with no other rules evaluated.
func Score(pw string) models.StrengthResult {
	if pw == "" {
		return models.StrengthResult{Score: 0, Feedback: []string{FeedbackEmptyPassword}}
	}

	score := 0
	feedback := []string{}

	// Length is measured in characters, not bytes, so a multibyte password
	// does not earn inflated length credit.
	length := utf8.RuneCountInString(pw)

	if length >= 8 {
		score++
	} else {
		feedback = append(feedback, FeedbackTooShort)
	}
	if length >= 12 {
		score++
	}
	if length >= 16 {
		score++
	}

	if strings.ContainsFunc(pw, unicode.IsLower) {
		score++
	} else {
		feedback = append(feedback, FeedbackAddLowercase)
	}
	if strings.ContainsFunc(pw, unicode.IsUpper) {
		score++
	} else {
		feedback = append(feedback, FeedbackAddUppercase)
	}
	if strings.ContainsFunc(pw, unicode.IsDigit) {
		score++
	} else {
		feedback = append(feedback, FeedbackAddNumbers)
	}
	if strings.ContainsAny(pw, specialRunes) {
		score++
	} else {
		feedback = append(feedback, FeedbackAddSpecial)
	}

	lowered := strings.ToLower(pw)
	for _, pattern := range commonPatterns {
		if strings.Contains(lowered, pattern) {
			score -= 2
			feedback = append(feedback, FeedbackAvoidCommonPatterns)
			break
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 7 {
		score = 7
	}

	return models.StrengthResult{Score: score, Feedback: feedback}
}
