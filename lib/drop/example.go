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

package drop

import (
	"fmt"
	"io"

	"github.com/antflydb/dropset/lib/derive"
	"github.com/bytedance/sonic/encoder"
)

// Example is one preprocessed question record: the supervision unit the
// training consumer reads. Field names match the original pipeline's output.
type Example struct {
	PassageID     string            `json:"passage_id"`
	QueryID       string            `json:"query_id"`
	ContextTokens []string          `json:"context_tokens"`
	ContextChars  [][]string        `json:"context_chars"`
	QuesTokens    []string          `json:"ques_tokens"`
	QuesChars     [][]string        `json:"ques_chars"`
	NumberIndices []int             `json:"number_indices"`
	AnswerInfo    derive.AnswerInfo `json:"answer_info"`
}

// TokenChars explodes each token into its characters (runes, not bytes),
// for the character-level embedding input.
func TokenChars(tokens []string) [][]string {
	chars := make([][]string, len(tokens))
	for i, token := range tokens {
		runes := []rune(token)
		cs := make([]string, len(runes))
		for j, r := range runes {
			cs[j] = string(r)
		}
		chars[i] = cs
	}
	return chars
}

// Writer streams examples as NDJSON, one record per line. Not safe for
// concurrent use; the run collector owns it.
type Writer struct {
	enc   *encoder.StreamEncoder
	count int
}

// NewWriter wraps w for example output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: encoder.NewStreamEncoder(w)}
}

// Write appends one example record.
func (w *Writer) Write(example *Example) error {
	if err := w.enc.Encode(example); err != nil {
		return fmt.Errorf("encoding example %s: %w", example.QueryID, err)
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	return w.count
}
