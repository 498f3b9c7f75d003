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

package derive

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// Span is one inclusive token range [Start, End] in the passage where an
// answer text occurs. It serializes as a two-element array to match the
// training consumer's record format.
type Span struct {
	Start int
	End   int
}

// MarshalJSON renders the span as [start, end].
func (s Span) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "[%d,%d]", s.Start, s.End), nil
}

// UnmarshalJSON accepts the [start, end] form.
func (s *Span) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := sonic.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("parsing span %q: %w", data, err)
	}
	s.Start, s.End = pair[0], pair[1]
	return nil
}

// strippedCharacters is trimmed from token edges during normalization: ASCII
// punctuation plus the curly quote variants word tokenizers leave attached.
const strippedCharacters = asciiPunctuation + "‘’´`_"

// fillerTokens may appear inside a matched span without breaking the match.
var fillerTokens = map[string]struct{}{
	"a":   {},
	"an":  {},
	"the": {},
}

func normalizeToken(token string) string {
	return strings.Trim(strings.ToLower(token), strippedCharacters)
}

// FindValidSpans returns every contiguous token span whose normalized text
// equals one of the answer texts. Matching is greedy and forward-only: for
// each passage occurrence of the first answer token, subsequent passage
// tokens either consume the next answer token or, if they are filler tokens,
// are skipped. Duplicate spans across answer texts are preserved; the caller
// decides whether to dedupe. An answer text that normalizes to nothing
// produces no spans.
//
// The first answer token is compared exactly as split from the answer text
// (interior punctuation intact), while later tokens are re-normalized before
// comparison. "St. Louis" therefore never matches the tokenized passage;
// callers are expected to pass answers through the same tokenizer as the
// passage, which splits the period off.
func FindValidSpans(passageTokens []string, answerTexts []string) []Span {
	normalized := make([]string, len(passageTokens))
	positions := make(map[string][]int, len(passageTokens))
	for i, token := range passageTokens {
		norm := normalizeToken(token)
		normalized[i] = norm
		positions[norm] = append(positions[norm], i)
	}

	var spans []Span
	for _, answerText := range answerTexts {
		answerTokens := strings.Fields(strings.Trim(strings.ToLower(answerText), strippedCharacters))
		if len(answerTokens) == 0 {
			continue
		}
		for _, start := range positions[answerTokens[0]] {
			end := start
			answerIndex := 1
			for answerIndex < len(answerTokens) && end+1 < len(normalized) {
				token := normalized[end+1]
				if strings.Trim(answerTokens[answerIndex], strippedCharacters) == token {
					answerIndex++
					end++
				} else if _, filler := fillerTokens[token]; filler {
					end++
				} else {
					break
				}
			}
			if answerIndex == len(answerTokens) {
				spans = append(spans, Span{Start: start, End: end})
			}
		}
	}
	return spans
}
