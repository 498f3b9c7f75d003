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

// AnswerKind identifies which annotation field supplied the answer text.
type AnswerKind string

const (
	AnswerNone   AnswerKind = ""
	AnswerSpans  AnswerKind = "spans"
	AnswerNumber AnswerKind = "number"
	AnswerDate   AnswerKind = "date"
)

// Date is a partially filled date annotation; empty fields are unset.
type Date struct {
	Day   string
	Month string
	Year  string
}

// Annotation is one question's raw gold answer: exactly one of Spans, Number,
// or Date is expected to be populated.
type Annotation struct {
	Spans  []string
	Number string
	Date   Date
}

// ExtractAnswerTexts unpacks an annotation into answer strings, preferring
// spans over a number over a date. A date renders as its non-empty month,
// day, and year fields, in that order. An empty annotation yields
// (AnswerNone, nil).
func ExtractAnswerTexts(annotation Annotation) (AnswerKind, []string) {
	switch {
	case len(annotation.Spans) > 0:
		return AnswerSpans, annotation.Spans
	case annotation.Number != "":
		return AnswerNumber, []string{annotation.Number}
	}
	var dateTexts []string
	for _, field := range []string{annotation.Date.Month, annotation.Date.Day, annotation.Date.Year} {
		if field != "" {
			dateTexts = append(dateTexts, field)
		}
	}
	if len(dateTexts) > 0 {
		return AnswerDate, dateTexts
	}
	return AnswerNone, nil
}

// AnswerInfo aggregates every valid derivation of one question's answer.
// It is immutable after construction and consumed as multi-label supervision:
// any entry in each set is an acceptable gold derivation. Empty sets are
// legitimate results meaning that answering strategy does not apply.
type AnswerInfo struct {
	AnswerTexts    []string `json:"answer_texts"`
	PassageSpans   []Span   `json:"answer_passage_spans"`
	SignsForAddSub [][]int  `json:"signs_for_add_sub_expressions"`
	Counts         []int    `json:"counts"`
}

// Empty reports whether no derivation strategy produced a match.
func (ai AnswerInfo) Empty() bool {
	return len(ai.PassageSpans) == 0 && len(ai.SignsForAddSub) == 0 && len(ai.Counts) == 0
}

// Builder assembles AnswerInfo records. It holds the shared read-only count
// table and the term bound, so it is safe for concurrent use.
type Builder struct {
	maxTerms   int
	countRange []int
}

// NewBuilder creates a Builder. Non-positive arguments fall back to
// DefaultMaxTerms and DefaultMaxCount.
func NewBuilder(maxTerms, maxCount int) *Builder {
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}
	return &Builder{
		maxTerms:   maxTerms,
		countRange: CountRange(maxCount),
	}
}

// Build runs all derivation searches for one question. Span matching uses the
// tokenized-and-rejoined answer texts so answer tokenization agrees with
// passage tokenization; number extraction uses the raw answer texts. The
// add/sub enumerator and the count matcher only run when at least one answer
// text parsed as a number.
func (b *Builder) Build(passageTokens, tokenizedAnswerTexts, answerTexts []string, numbers []float64) AnswerInfo {
	info := AnswerInfo{AnswerTexts: answerTexts}

	if len(tokenizedAnswerTexts) > 0 {
		info.PassageSpans = FindValidSpans(passageTokens, tokenizedAnswerTexts)
	}

	var targets []float64
	for _, text := range answerTexts {
		if value, ok := ExtractNumberLenient(text); ok {
			targets = append(targets, value)
		}
	}
	if len(targets) > 0 {
		info.SignsForAddSub = FindAddSubExpressions(numbers, targets, b.maxTerms)
		info.Counts = FindValidCounts(b.countRange, targets)
	}
	return info
}
