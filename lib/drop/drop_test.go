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
	"bytes"
	"strings"
	"testing"

	"github.com/antflydb/dropset/lib/derive"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `{
  "nfl_204": {
    "passage": "There were 3 cats and 5 dogs.",
    "qa_pairs": [
      {
        "question": "How many animals were there?",
        "answer": {"number": "8", "date": {"day": "", "month": "", "year": ""}, "spans": []},
        "query_id": "q1"
      },
      {
        "question": "Which animals were counted first?",
        "answer": {"number": "", "date": {"day": "", "month": "", "year": ""}, "spans": ["cats"]},
        "query_id": "q2",
        "validated_answers": [
          {"number": "", "date": {"day": "", "month": "", "year": ""}, "spans": ["cats"]}
        ]
      }
    ]
  },
  "history_12": {
    "passage": "The treaty was signed in 1648.",
    "qa_pairs": [
      {
        "question": "When was the treaty signed?",
        "answer": {"number": "", "date": {"day": "", "month": "", "year": "1648"}, "spans": []},
        "query_id": "q3"
      }
    ]
  }
}`

func TestDecodeDataset(t *testing.T) {
	dataset, err := DecodeDataset(strings.NewReader(sampleDataset))
	require.NoError(t, err)
	require.Len(t, dataset, 2)

	article := dataset["nfl_204"]
	assert.Equal(t, "There were 3 cats and 5 dogs.", article.Passage)
	require.Len(t, article.QAPairs, 2)
	assert.Equal(t, "8", article.QAPairs[0].Answer.Number)
	assert.Equal(t, []string{"cats"}, article.QAPairs[1].Answer.Spans)
	assert.Len(t, article.QAPairs[1].ValidatedAnswers, 1)
	assert.Equal(t, "1648", dataset["history_12"].QAPairs[0].Answer.Date.Year)

	assert.Equal(t, []string{"history_12", "nfl_204"}, dataset.PassageIDs())
	assert.Equal(t, 3, dataset.Questions())
}

func TestTokenChars(t *testing.T) {
	chars := TokenChars([]string{"cat", "5", "£10"})
	assert.Equal(t, [][]string{
		{"c", "a", "t"},
		{"5"},
		{"£", "1", "0"},
	}, chars)
	assert.Empty(t, TokenChars(nil))
}

func TestWriterNDJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	examples := []*Example{
		{
			PassageID:     "p1",
			QueryID:       "q1",
			ContextTokens: []string{"a", "b"},
			ContextChars:  TokenChars([]string{"a", "b"}),
			NumberIndices: []int{1},
			AnswerInfo: derive.AnswerInfo{
				AnswerTexts:  []string{"b"},
				PassageSpans: []derive.Span{{Start: 1, End: 1}},
			},
		},
		{PassageID: "p1", QueryID: "q2"},
	}
	for _, example := range examples {
		require.NoError(t, w.Write(example))
	}
	assert.Equal(t, 2, w.Count())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var decoded Example
	require.NoError(t, sonic.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, "q1", decoded.QueryID)
	assert.Equal(t, []derive.Span{{Start: 1, End: 1}}, decoded.AnswerInfo.PassageSpans)
	// Spans serialize as two-element arrays for the Python consumer.
	assert.Contains(t, lines[0], `"answer_passage_spans":[[1,1]]`)
}

func TestVocab(t *testing.T) {
	vocab := NewVocab()
	vocab.Add([]string{"cat", "cat", "dog"}, 2)
	vocab.Add([]string{"cat"}, 1)

	assert.Equal(t, 5, vocab.Words["cat"])
	assert.Equal(t, 2, vocab.Words["dog"])
	assert.Equal(t, 5, vocab.Chars["c"])
	assert.Equal(t, 5, vocab.Chars["a"])
	assert.Equal(t, 2, vocab.Chars["g"])
}
