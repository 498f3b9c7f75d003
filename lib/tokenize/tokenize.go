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

// Package tokenize is the boundary to the word tokenizer. The preprocessing
// pipeline treats tokenization as a black box producing a token sequence;
// character offsets are recovered separately by Align. Tokenizers are passed
// explicitly as dependencies, never held in package state.
package tokenize

import (
	"fmt"
	"regexp"
	"strings"
)

// Tokenizer produces word-level tokens for passages, questions, and answer
// texts. Implementations must be safe for concurrent use and deterministic.
type Tokenizer interface {
	Tokenize(text string) []string
}

// wordPattern keeps digit runs with embedded separators whole ("1,205",
// "3.5", "1876-77"), groups letter runs with internal apostrophes ("don't"),
// and emits any other non-space rune as its own token.
var wordPattern = regexp.MustCompile(`\d+(?:[,.\-/:]\d+)*|[\p{L}\p{M}]+(?:['’][\p{L}\p{M}]+)*|\S`)

// WordTokenizer is the default tokenizer: a regexp word splitter that
// approximates a rule-based blank English pipeline. It carries no state.
type WordTokenizer struct{}

// NewWordTokenizer returns the default word tokenizer.
func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{}
}

// Tokenize splits text into word-level tokens.
func (*WordTokenizer) Tokenize(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// Offset is a token's [Start, End) byte range in its source text.
type Offset struct {
	Start int
	End   int
}

// AlignmentError reports a token whose text could not be located in the
// source string. It is a hard fault for the article being processed.
type AlignmentError struct {
	Token string
	Index int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("token %q (index %d) not found in source text", e.Token, e.Index)
}

// Align recovers byte offsets for tokens by scanning the source text left to
// right. Tokens must appear in order; each search resumes after the previous
// token's end, so repeated tokens resolve to successive occurrences.
func Align(text string, tokens []string) ([]Offset, error) {
	offsets := make([]Offset, 0, len(tokens))
	current := 0
	for i, token := range tokens {
		rel := strings.Index(text[current:], token)
		if rel < 0 {
			return nil, &AlignmentError{Token: token, Index: i}
		}
		start := current + rel
		offsets = append(offsets, Offset{Start: start, End: start + len(token)})
		current = start + len(token)
	}
	return offsets, nil
}
