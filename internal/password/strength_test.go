// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PiVault Authors

package password

import (
	"reflect"
	"testing"

	"github.com/pivault/pivault/models"
)

func TestScore_EmptyPassword(t *testing.T) {
	res := Score("")

	if res.Score != 0 {
		t.Fatalf("score = %d, want 0", res.Score)
	}
	if !reflect.DeepEqual(res.Feedback, []string{FeedbackEmptyPassword}) {
		t.Fatalf("feedback = %v, want [empty_password]", res.Feedback)
	}
}

func TestScore_CommonPassword(t *testing.T) {
	res := Score("password")

	// 8 chars (+1) and lowercase (+1), minus 2 for the denylist hit.
	if res.Score != 0 {
		t.Fatalf("score = %d, want 0", res.Score)
	}
	want := []string{
		FeedbackAddUppercase,
		FeedbackAddNumbers,
		FeedbackAddSpecial,
		FeedbackAvoidCommonPatterns,
	}
	if !reflect.DeepEqual(res.Feedback, want) {
		t.Fatalf("feedback = %v, want %v", res.Feedback, want)
	}
}

func TestScore_StrongPassword(t *testing.T) {
	res := Score("Kp#9vTz!mWq2Lr$8Xn4d")

	if res.Score < 6 {
		t.Fatalf("score = %d, want >= 6 for a 20-char mixed-class password", res.Score)
	}
	if len(res.Feedback) != 0 {
		t.Fatalf("feedback = %v, want none", res.Feedback)
	}
}

func TestScore_LengthCountsCharactersNotBytes(t *testing.T) {
	// Seven characters but thirteen bytes: six two-byte Cyrillic letters plus
	// "!". Byte-based length would credit the 8 and 12 thresholds.
	res := Score("пароль!")

	// Lowercase (+1) and special (+1) only; too short for any length credit.
	if res.Score != 2 {
		t.Fatalf("score = %d, want 2", res.Score)
	}
	if res.Feedback[0] != FeedbackTooShort {
		t.Fatalf("feedback = %v, want %q first", res.Feedback, FeedbackTooShort)
	}
}

func TestScore_MaxScoreClamped(t *testing.T) {
	// 16+ chars, all four classes: 3+4 = 7, the ceiling.
	res := Score("Kp#9vTz!mWq2Lr$8")
	if res.Score != 7 {
		t.Fatalf("score = %d, want 7", res.Score)
	}
}

func TestScore_RuleTable(t *testing.T) {
	cases := []struct {
		name     string
		password string
		score    int
		feedback []string
	}{
		{
			name:     "too short",
			password: "aB3!",
			score:    4,
			feedback: []string{FeedbackTooShort},
		},
		{
			name:     "lower only",
			password: "nvmkwpfhrt",
			score:    2,
			feedback: []string{FeedbackAddUppercase, FeedbackAddNumbers, FeedbackAddSpecial},
		},
		{
			name:     "digits only",
			password: "5873920467",
			score:    2,
			feedback: []string{FeedbackAddLowercase, FeedbackAddUppercase, FeedbackAddSpecial},
		},
		{
			name:     "pattern hit is case-insensitive",
			password: "QwErTy!9zmKd",
			score:    4,
			feedback: []string{FeedbackAvoidCommonPatterns},
		},
		{
			name:     "negative total clamps to zero",
			password: "abc",
			score:    0,
			feedback: []string{FeedbackTooShort, FeedbackAddUppercase, FeedbackAddNumbers, FeedbackAddSpecial, FeedbackAvoidCommonPatterns},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Score(tc.password)
			if res.Score != tc.score {
				t.Fatalf("Score(%q) = %d, want %d", tc.password, res.Score, tc.score)
			}
			if !reflect.DeepEqual(res.Feedback, tc.feedback) {
				t.Fatalf("Score(%q) feedback = %v, want %v", tc.password, res.Feedback, tc.feedback)
			}
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	r1 := Score("Some#Password1")
	r2 := Score("Some#Password1")

	if r1.Score != r2.Score || !reflect.DeepEqual(r1.Feedback, r2.Feedback) {
		t.Fatalf("Score is not deterministic: %+v vs %+v", r1, r2)
	}
}

func TestScore_GeneratedPasswordsScoreWell(t *testing.T) {
	policy := models.PasswordPolicy{
		Length:         20,
		IncludeUpper:   true,
		IncludeLower:   true,
		IncludeDigits:  true,
		IncludeSymbols: true,
	}

	for i := 0; i < 10; i++ {
		pw, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate error: %v", err)
		}
		if res := Score(pw); res.Score < 6 {
			t.Fatalf("generated password %q scored %d, want >= 6", pw, res.Score)
		}
	}
}
