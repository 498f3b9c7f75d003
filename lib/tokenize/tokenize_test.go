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

package tokenize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordTokenizer(t *testing.T) {
	tok := NewWordTokenizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "words and sentence punctuation",
			text: "The cat sat down.",
			want: []string{"The", "cat", "sat", "down", "."},
		},
		{
			name: "thousands separator kept whole",
			text: "He rushed for 1,205 yards",
			want: []string{"He", "rushed", "for", "1,205", "yards"},
		},
		{
			name: "decimal kept whole",
			text: "an average of 3.5 points",
			want: []string{"an", "average", "of", "3.5", "points"},
		},
		{
			name: "quotes split off",
			text: `scored " twice "`,
			want: []string{"scored", `"`, "twice", `"`},
		},
		{
			name: "hyphenated number range",
			text: "the 1876-77 season",
			want: []string{"the", "1876-77", "season"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.Tokenize(tt.text))
		})
	}
}

func TestAlign(t *testing.T) {
	text := "The cat sat. The cat left."
	tokens := []string{"The", "cat", "sat", ".", "The", "cat", "left", "."}

	offsets, err := Align(text, tokens)
	require.NoError(t, err)
	require.Len(t, offsets, len(tokens))

	for i, off := range offsets {
		assert.Equal(t, tokens[i], text[off.Start:off.End], "token %d", i)
	}
	// Repeated tokens resolve to successive occurrences.
	assert.Equal(t, Offset{Start: 0, End: 3}, offsets[0])
	assert.Equal(t, Offset{Start: 13, End: 16}, offsets[4])
}

func TestAlignFailure(t *testing.T) {
	_, err := Align("The cat sat", []string{"The", "dog"})
	require.Error(t, err)

	var alignErr *AlignmentError
	require.ErrorAs(t, err, &alignErr)
	assert.Equal(t, "dog", alignErr.Token)
	assert.Equal(t, 1, alignErr.Index)
}

func TestAlignRoundTripsTokenizer(t *testing.T) {
	tok := NewWordTokenizer()
	text := "There were 3 cats and 5 dogs, maybe more."

	tokens := tok.Tokenize(text)
	offsets, err := Align(text, tokens)
	require.NoError(t, err)

	for i, off := range offsets {
		assert.Equal(t, tokens[i], text[off.Start:off.End])
	}
}

func TestBPECounter(t *testing.T) {
	counter, err := NewBPECounter("")
	require.NoError(t, err)

	assert.Equal(t, 0, counter.CountTokens(""))
	assert.Greater(t, counter.CountTokens("There were 3 cats and 5 dogs"), 0)
}

func TestBertWordPieceCounter(t *testing.T) {
	vocab := "[PAD]\n[UNK]\n[CLS]\n[SEP]\nhello\nworld\n"
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte(vocab), 0o644))

	counter, err := NewBertWordPieceCounter(path)
	require.NoError(t, err)

	assert.Equal(t, 0, counter.CountTokens(""))
	assert.Greater(t, counter.CountTokens("hello world"), 0)
}

func TestBertWordPieceCounterMissingVocab(t *testing.T) {
	_, err := NewBertWordPieceCounter("/does/not/exist/vocab.txt")
	require.Error(t, err)
}
