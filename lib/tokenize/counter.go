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
	"fmt"
	"os"
	"strings"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/decoder"
	"github.com/sugarme/tokenizer/model"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
	"github.com/sugarme/tokenizer/util"
)

// Counter reports subword token counts for dataset statistics, e.g. how many
// model tokens a passage costs under a given vocabulary.
type Counter interface {
	// CountTokens returns the number of tokens in the text.
	// Returns a character-based estimate on error.
	CountTokens(text string) int
}

// BertWordPieceCounter counts tokens under BERT's WordPiece tokenization.
type BertWordPieceCounter struct {
	tokenizer *tokenizer.Tokenizer
}

// NewBertWordPieceCounter creates a WordPiece counter from a vocab file
// (one token per line, ID is line number).
func NewBertWordPieceCounter(vocabPath string) (*BertWordPieceCounter, error) {
	data, err := os.ReadFile(vocabPath)
	if err != nil {
		return nil, fmt.Errorf("reading vocab file: %w", err)
	}

	vocab := make(model.Vocab)
	for i, line := range strings.Split(string(data), "\n") {
		if line != "" {
			vocab[line] = i
		}
	}

	opts := util.NewParams(map[string]any{
		"unk_token": "[UNK]",
	})
	wp, err := wordpiece.New(vocab, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create wordpiece model: %w", err)
	}

	tk := tokenizer.NewTokenizer(wp)

	// BERT normalizer: clean text, lowercase, handle Chinese chars, strip accents
	tk.WithNormalizer(normalizer.NewBertNormalizer(true, true, true, true))
	tk.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())
	tk.WithDecoder(decoder.DefaultWordpieceDecoder())

	return &BertWordPieceCounter{tokenizer: tk}, nil
}

// CountTokens returns the number of tokens in the text.
// Uses a recover wrapper to handle panics from the underlying tokenizer
// library (github.com/sugarme/tokenizer has a bounds check bug in
// BertNormalizer.TransformRange).
func (c *BertWordPieceCounter) CountTokens(text string) (count int) {
	if text == "" {
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			// Fallback: rough approximation (1 token ≈ 4 chars for English)
			count = len(text) / 4
		}
	}()

	enc, err := c.tokenizer.EncodeSingle(text)
	if err != nil {
		return len(text) / 4
	}

	return len(enc.Ids)
}

// BPECounter counts tokens under OpenAI's tiktoken BPE tokenization.
type BPECounter struct {
	tiktoken *tiktoken.Tiktoken
}

func init() {
	// Set the offline loader for tiktoken to avoid network requests
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// NewBPECounter creates a BPE counter using tiktoken-go with embedded
// dictionaries. Encoding defaults to cl100k_base.
func NewBPECounter(encoding string) (*BPECounter, error) {
	if encoding == "" {
		encoding = "cl100k_base"
	}

	tk, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get tiktoken encoding %q: %w", encoding, err)
	}

	return &BPECounter{tiktoken: tk}, nil
}

// CountTokens returns the number of tokens in the text.
func (c *BPECounter) CountTokens(text string) int {
	if text == "" {
		return 0
	}

	tokens := c.tiktoken.Encode(text, nil, nil)
	return len(tokens)
}
