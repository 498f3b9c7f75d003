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
	"os"

	"github.com/bytedance/sonic/encoder"
)

// Vocab accumulates word and character frequencies across a dataset, the
// input for the downstream embedding-matrix builder. Passage tokens are
// weighted by how many questions share the passage; question tokens count
// once. Not safe for concurrent use; the run collector owns it.
type Vocab struct {
	Words map[string]int `json:"words"`
	Chars map[string]int `json:"chars"`
}

// NewVocab returns empty frequency tables.
func NewVocab() *Vocab {
	return &Vocab{
		Words: make(map[string]int),
		Chars: make(map[string]int),
	}
}

// Add counts each token and each of its characters with the given weight.
func (v *Vocab) Add(tokens []string, weight int) {
	for _, token := range tokens {
		v.Words[token] += weight
		for _, r := range token {
			v.Chars[string(r)] += weight
		}
	}
}

// Save writes the frequency tables as JSON.
func (v *Vocab) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating vocab file: %w", err)
	}
	defer f.Close()
	if err := encoder.NewStreamEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encoding vocab: %w", err)
	}
	return nil
}
