// Copyright 2025 Antfly, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package derive implements the answer-derivation search for discrete-reasoning
// reading-comprehension datasets: given a passage's tokens, the numbers they
// contain, and the gold answer text(s), it enumerates every way the answer
// could have been produced: an exact token span, a signed combination of
// passage numbers, or a count. The resulting sets are multi-instance
// supervision: any member is an acceptable gold derivation, and redundant
// derivations are deliberately kept.
package derive

import (
	"strconv"
	"strings"
)

// wordNumbers maps spelled-out small integers to their values. Multi-word
// numbers ("twenty one") and magnitude words ("hundred") are out of scope:
// passage scanning only sees single tokens.
var wordNumbers = map[string]float64{
	"zero":      0,
	"one":       1,
	"two":       2,
	"three":     3,
	"four":      4,
	"five":      5,
	"six":       6,
	"seven":     7,
	"eight":     8,
	"nine":      9,
	"ten":       10,
	"eleven":    11,
	"twelve":    12,
	"thirteen":  13,
	"fourteen":  14,
	"fifteen":   15,
	"sixteen":   16,
	"seventeen": 17,
	"eighteen":  18,
	"nineteen":  19,
}

// magnitudeWords are rejected in lenient mode: a bare "thousand" in an answer
// text is not a usable target value.
var magnitudeWords = map[string]struct{}{
	"hundred":  {},
	"thousand": {},
	"million":  {},
	"billion":  {},
	"trillion": {},
}

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// lenientCutset keeps the minus sign so negative numbers survive the trim.
var lenientCutset = strings.ReplaceAll(asciiPunctuation, "-", "")

// ExtractNumber converts a single passage token to a numeric value: commas
// (thousands separators) are removed, then the token is checked against the
// small-integer word map and finally parsed as an integer. A false return is
// not an error, it means "not a number".
func ExtractNumber(token string) (float64, bool) {
	word := strings.ReplaceAll(token, ",", "")
	if v, ok := wordNumbers[word]; ok {
		return v, true
	}
	if v, err := strconv.ParseInt(word, 10, 64); err == nil {
		return float64(v), true
	}
	return 0, false
}

// ExtractNumberLenient converts free-form answer text to a numeric value.
// Surrounding punctuation (except a minus sign) is trimmed and embedded commas
// removed before falling through the word map, integer parse, and float parse.
// Only used on answer texts, never for scanning the passage.
func ExtractNumberLenient(text string) (float64, bool) {
	word := strings.Trim(text, lenientCutset)
	word = strings.ReplaceAll(word, ",", "")
	if _, bare := magnitudeWords[word]; bare {
		return 0, false
	}
	if v, ok := wordNumbers[word]; ok {
		return v, true
	}
	if v, err := strconv.ParseInt(word, 10, 64); err == nil {
		return float64(v), true
	}
	if v, err := strconv.ParseFloat(word, 64); err == nil {
		return v, true
	}
	return 0, false
}
