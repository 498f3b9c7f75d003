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

package dropset

import (
	"runtime"
	"time"

	"github.com/antflydb/dropset/lib/derive"
	"github.com/antflydb/dropset/lib/tokenize"
)

// Config controls a preprocessing run.
type Config struct {
	// Input is the DROP dataset JSON file.
	Input string

	// Output is the NDJSON examples file.
	Output string

	// VocabOut, when set, receives the word/char frequency tables as JSON.
	VocabOut string

	// Workers is the number of concurrent article workers (0 = CPU count).
	Workers int

	// MaxTerms bounds the add/sub expression search (0 = 2).
	MaxTerms int

	// MaxCount is the exclusive upper bound of the count range (0 = 100000).
	MaxCount int

	// CacheTTL is the tokenization cache TTL (0 = 2m).
	CacheTTL time.Duration

	// Tokenizer overrides the word tokenizer (nil = the regexp word
	// tokenizer). Must be safe for concurrent use.
	Tokenizer tokenize.Tokenizer

	// MetricsPort, when non-zero, serves /healthz and /metrics during the run.
	MetricsPort int
}

// withDefaults fills zero values with working defaults.
func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxTerms <= 0 {
		c.MaxTerms = derive.DefaultMaxTerms
	}
	if c.MaxCount <= 0 {
		c.MaxCount = derive.DefaultMaxCount
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = TokenizeCacheTTL
	}
	if c.Tokenizer == nil {
		c.Tokenizer = tokenize.NewWordTokenizer()
	}
	return c
}
