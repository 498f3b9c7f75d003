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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindValidSpans(t *testing.T) {
	tests := []struct {
		name    string
		passage []string
		answers []string
		want    []Span
	}{
		{
			name:    "simple match",
			passage: []string{"The", "cat", "sat"},
			answers: []string{"cat sat"},
			want:    []Span{{Start: 1, End: 2}},
		},
		{
			name:    "filler token inside span",
			passage: []string{"cat", "a", "sat"},
			answers: []string{"cat sat"},
			want:    []Span{{Start: 0, End: 2}},
		},
		{
			name:    "case and punctuation normalized",
			passage: []string{"Touchdown", "by", "Smith", "."},
			answers: []string{"Smith"},
			want:    []Span{{Start: 2, End: 2}},
		},
		{
			name:    "every occurrence reported",
			passage: []string{"red", "fish", "blue", "fish"},
			answers: []string{"fish"},
			want:    []Span{{Start: 1, End: 1}, {Start: 3, End: 3}},
		},
		{
			name:    "no answers",
			passage: []string{"some", "passage"},
			answers: nil,
			want:    nil,
		},
		{
			name:    "first token absent",
			passage: []string{"The", "cat", "sat"},
			answers: []string{"dog sat"},
			want:    nil,
		},
		{
			name:    "partial match abandoned",
			passage: []string{"cat", "ran", "sat"},
			answers: []string{"cat sat"},
			want:    nil,
		},
		{
			name:    "match cut off by passage end",
			passage: []string{"the", "cat"},
			answers: []string{"cat sat"},
			want:    nil,
		},
		{
			name:    "answer normalizing to nothing",
			passage: []string{"some", "passage"},
			answers: []string{"..."},
			want:    nil,
		},
		{
			name:    "duplicate answers preserved",
			passage: []string{"three", "points"},
			answers: []string{"three points", "three points"},
			want:    []Span{{Start: 0, End: 1}, {Start: 0, End: 1}},
		},
		{
			// Interior punctuation survives whitespace splitting of the
			// answer text, so the first token lookup fails. Tokenized
			// answers ("St . Louis") are what actually match.
			name:    "interior punctuation in first answer token",
			passage: []string{"St", ".", "Louis", "won"},
			answers: []string{"St. Louis"},
			want:    nil,
		},
		{
			name:    "tokenized answer matches",
			passage: []string{"St", ".", "Louis", "won"},
			answers: []string{"St . Louis"},
			want:    []Span{{Start: 0, End: 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindValidSpans(tt.passage, tt.answers)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindValidSpansOrderStable(t *testing.T) {
	passage := []string{"a", "b", "a", "b", "a", "b"}
	answers := []string{"b", "a b"}
	first := FindValidSpans(passage, answers)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, FindValidSpans(passage, answers))
	}
}

func TestSpanJSONRoundTrip(t *testing.T) {
	data, err := Span{Start: 3, End: 7}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[3,7]", string(data))

	var s Span
	require.NoError(t, s.UnmarshalJSON(data))
	assert.Equal(t, Span{Start: 3, End: 7}, s)
}
