// Copyright 2025 Antfly, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package cmd

import (
	"fmt"

	"github.com/antflydb/dropset/lib/drop"
	"github.com/antflydb/dropset/lib/tokenize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dataset statistics",
	Long: `Summarize a DROP dataset: article and question counts, word-token
counts, and optionally subword-token counts for sizing model inputs.

Examples:
  # Basic word-level statistics
  dropset stats --input drop_dataset_dev.json

  # Include WordPiece subword counts
  dropset stats --input drop_dataset_dev.json --wordpiece-vocab bert-base-uncased-vocab.txt

  # Include BPE subword counts
  dropset stats --input drop_dataset_dev.json --bpe-encoding cl100k_base`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().String("input", "", "DROP dataset JSON file (required)")
	statsCmd.Flags().String("wordpiece-vocab", "", "WordPiece vocabulary file for subword counts")
	statsCmd.Flags().String("bpe-encoding", "", "tiktoken encoding name for subword counts (e.g. cl100k_base)")
	_ = statsCmd.MarkFlagRequired("input")
}

func runStats(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	wordpieceVocab, _ := cmd.Flags().GetString("wordpiece-vocab")
	bpeEncoding, _ := cmd.Flags().GetString("bpe-encoding")

	var counters []struct {
		name    string
		counter tokenize.Counter
	}
	if wordpieceVocab != "" {
		wp, err := tokenize.NewBertWordPieceCounter(wordpieceVocab)
		if err != nil {
			return fmt.Errorf("loading wordpiece vocab: %w", err)
		}
		counters = append(counters, struct {
			name    string
			counter tokenize.Counter
		}{"wordpiece", wp})
	}
	if bpeEncoding != "" {
		bpe, err := tokenize.NewBPECounter(bpeEncoding)
		if err != nil {
			return fmt.Errorf("loading bpe encoding: %w", err)
		}
		counters = append(counters, struct {
			name    string
			counter tokenize.Counter
		}{"bpe", bpe})
	}

	dataset, err := drop.ReadDataset(input)
	if err != nil {
		return err
	}

	tok := tokenize.NewWordTokenizer()
	var passageTokens, questionTokens, maxPassage int
	subwords := make(map[string]int, len(counters))

	for _, id := range dataset.PassageIDs() {
		article := dataset[id]
		n := len(tok.Tokenize(article.Passage))
		passageTokens += n
		if n > maxPassage {
			maxPassage = n
		}
		for _, c := range counters {
			subwords[c.name] += c.counter.CountTokens(article.Passage)
		}
		for _, qa := range article.QAPairs {
			questionTokens += len(tok.Tokenize(qa.Question))
			for _, c := range counters {
				subwords[c.name] += c.counter.CountTokens(qa.Question)
			}
		}
	}

	fmt.Println("articles:        ", len(dataset))
	fmt.Println("questions:       ", dataset.Questions())
	fmt.Println("passage tokens:  ", passageTokens)
	fmt.Println("question tokens: ", questionTokens)
	fmt.Println("longest passage: ", maxPassage)
	for _, c := range counters {
		fmt.Printf("%s subwords:  %d\n", c.name, subwords[c.name])
	}
	return nil
}
