// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package models

// Password generation length bounds. Requests outside the range are clamped.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// PasswordPolicy selects the character classes and length for generated
// passwords. At least one class flag must be set; the generator silently
// falls back to lowercase letters if a caller clears all four.
type PasswordPolicy struct {
	Length           int  `json:"length"`
	IncludeUpper     bool `json:"include_upper"`
	IncludeLower     bool `json:"include_lower"`
	IncludeDigits    bool `json:"include_digits"`
	IncludeSymbols   bool `json:"include_symbols"`
	ExcludeAmbiguous bool `json:"exclude_ambiguous"`
}

// DefaultPasswordPolicy returns the policy preselected in the generator UI:
// 16 characters, all classes, ambiguous characters kept.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		Length:         16,
		IncludeUpper:   true,
		IncludeLower:   true,
		IncludeDigits:  true,
		IncludeSymbols: true,
	}
}

// StrengthResult is the outcome of scoring a password: an additive score
// clamped to [0,7] and an ordered list of symbolic feedback codes
// ("add_uppercase", "avoid_common_patterns", ...). The codes are stable
// identifiers meant for localization by the presentation layer.
type StrengthResult struct {
	Score    int      `json:"score"`
	Feedback []string `json:"feedback"`
}
