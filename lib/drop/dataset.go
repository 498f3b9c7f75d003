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

// Package drop reads DROP-format reading-comprehension datasets and writes
// the preprocessed example records the training pipeline consumes.
package drop

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bytedance/sonic/decoder"
)

// Dataset is the top-level DROP JSON object: passage id -> article.
type Dataset map[string]Article

// Article is one passage with its question/answer pairs.
type Article struct {
	Passage string   `json:"passage"`
	QAPairs []QAPair `json:"qa_pairs"`
	WikiURL string   `json:"wiki_url,omitempty"`
}

// QAPair is one question with its gold answer annotation.
type QAPair struct {
	Question         string   `json:"question"`
	Answer           Answer   `json:"answer"`
	QueryID          string   `json:"query_id"`
	ValidatedAnswers []Answer `json:"validated_answers,omitempty"`
}

// Answer is a raw DROP answer annotation; exactly one of Number, Date, or
// Spans carries the gold answer.
type Answer struct {
	Number string   `json:"number"`
	Date   Date     `json:"date"`
	Spans  []string `json:"spans"`
}

// Date is a partially filled date; empty fields are unset.
type Date struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

// DecodeDataset decodes a DROP dataset from r.
func DecodeDataset(r io.Reader) (Dataset, error) {
	var dataset Dataset
	if err := decoder.NewStreamDecoder(r).Decode(&dataset); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	return dataset, nil
}

// ReadDataset loads a DROP dataset file.
func ReadDataset(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return DecodeDataset(f)
}

// PassageIDs returns the dataset's passage ids in sorted order, so a run
// visits articles deterministically.
func (d Dataset) PassageIDs() []string {
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Questions returns the total number of question/answer pairs.
func (d Dataset) Questions() int {
	total := 0
	for _, article := range d {
		total += len(article.QAPairs)
	}
	return total
}
