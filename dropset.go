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

// Package dropset preprocesses DROP-format reading-comprehension datasets
// into answer-derivation supervision records. For every question it finds all
// the ways the gold answer could be derived from the passage: exact token
// spans, signed add/sub combinations of passage numbers, and counts. Articles
// are independent, so the run fans them out over a worker pool and collects
// results in input order.
package dropset

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/antflydb/dropset/lib/derive"
	"github.com/antflydb/dropset/lib/drop"
	"github.com/antflydb/dropset/lib/tokenize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Preprocessor turns one article at a time into example records. Safe for
// concurrent use: it holds only the tokenizer, the derivation builder, and a
// logger, all of which are themselves concurrency-safe.
type Preprocessor struct {
	tok     tokenize.Tokenizer
	builder *derive.Builder
	logger  *zap.Logger
}

// NewPreprocessor creates a Preprocessor. The tokenizer is an explicit
// dependency; nothing here reaches for ambient state.
func NewPreprocessor(tok tokenize.Tokenizer, maxTerms, maxCount int, logger *zap.Logger) *Preprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Preprocessor{
		tok:     tok,
		builder: derive.NewBuilder(maxTerms, maxCount),
		logger:  logger,
	}
}

// normalizeQuotes rewrites PTB-style quote pairs to plain double quotes, as
// the original dataset text uses '' and `` interchangeably.
func normalizeQuotes(text string) string {
	text = strings.ReplaceAll(text, "''", `" `)
	return strings.ReplaceAll(text, "``", `" `)
}

// ProcessArticle preprocesses one article into one example per question.
// A token alignment failure aborts this article only; the returned error
// wraps tokenize.AlignmentError and other articles are unaffected.
func (p *Preprocessor) ProcessArticle(passageID string, article drop.Article) ([]*drop.Example, error) {
	passage := normalizeQuotes(article.Passage)
	passageTokens := p.tok.Tokenize(passage)
	if _, err := tokenize.Align(passage, passageTokens); err != nil {
		return nil, fmt.Errorf("aligning passage %s: %w", passageID, err)
	}
	contextChars := drop.TokenChars(passageTokens)

	// Scan the passage once for numeric tokens; indices are strictly
	// increasing by construction.
	var numbers []float64
	var numberIndices []int
	for i, token := range passageTokens {
		if value, ok := derive.ExtractNumber(token); ok {
			numbers = append(numbers, value)
			numberIndices = append(numberIndices, i)
		}
	}

	examples := make([]*drop.Example, 0, len(article.QAPairs))
	for _, qa := range article.QAPairs {
		question := normalizeQuotes(qa.Question)
		quesTokens := p.tok.Tokenize(question)

		kind, answerTexts := derive.ExtractAnswerTexts(derive.Annotation{
			Spans:  qa.Answer.Spans,
			Number: qa.Answer.Number,
			Date: derive.Date{
				Day:   qa.Answer.Date.Day,
				Month: qa.Answer.Date.Month,
				Year:  qa.Answer.Date.Year,
			},
		})

		// Tokenize and rejoin each answer text so span matching sees the
		// same token boundaries as the passage.
		tokenizedAnswers := make([]string, 0, len(answerTexts))
		for _, text := range answerTexts {
			tokenizedAnswers = append(tokenizedAnswers, strings.Join(p.tok.Tokenize(text), " "))
		}

		info := p.builder.Build(passageTokens, tokenizedAnswers, answerTexts, numbers)
		RecordQuestion(len(info.PassageSpans), len(info.SignsForAddSub), len(info.Counts))
		if info.Empty() {
			p.logger.Debug("No valid derivation",
				zap.String("query_id", qa.QueryID),
				zap.String("answer_kind", string(kind)))
		}

		examples = append(examples, &drop.Example{
			PassageID:     passageID,
			QueryID:       qa.QueryID,
			ContextTokens: passageTokens,
			ContextChars:  contextChars,
			QuesTokens:    quesTokens,
			QuesChars:     drop.TokenChars(quesTokens),
			NumberIndices: numberIndices,
			AnswerInfo:    info,
		})
	}
	return examples, nil
}

// Summary reports what a run did.
type Summary struct {
	Articles       int
	ArticlesFailed int
	Questions      int
	Examples       int
	Duration       time.Duration
}

type articleResult struct {
	index    int
	examples []*drop.Example
	failed   bool
}

// Run preprocesses cfg.Input into cfg.Output. Articles are processed by a
// worker pool; a single collector owns the output writer and the vocabulary
// counters and writes results in dataset order, so identical inputs produce
// byte-identical outputs regardless of worker count.
func Run(ctx context.Context, cfg Config, logger *zap.Logger) (Summary, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	zl := logger.Named("preprocess")
	start := time.Now()

	if cfg.MetricsPort > 0 {
		go serveMetrics(ctx, cfg.MetricsPort, zl.Named("metrics"))
	}

	dataset, err := drop.ReadDataset(cfg.Input)
	if err != nil {
		return Summary{}, err
	}
	ids := dataset.PassageIDs()
	zl.Info("Loaded dataset",
		zap.String("input", cfg.Input),
		zap.Int("articles", len(ids)),
		zap.Int("questions", dataset.Questions()))

	out, err := os.Create(cfg.Output)
	if err != nil {
		return Summary{}, fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()
	writer := drop.NewWriter(out)

	cached := NewCachedTokenizer(cfg.Tokenizer, cfg.CacheTTL, zl)
	defer cached.Close()
	pre := NewPreprocessor(cached, cfg.MaxTerms, cfg.MaxCount, zl)

	var vocab *drop.Vocab
	if cfg.VocabOut != "" {
		vocab = drop.NewVocab()
	}

	jobs := make(chan int)
	results := make(chan articleResult, cfg.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range ids {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				id := ids[i]
				began := time.Now()
				examples, err := pre.ProcessArticle(id, dataset[id])
				if err != nil {
					// Alignment failures are isolated per article.
					RecordArticleFailure()
					zl.Warn("Skipping article", zap.String("passage_id", id), zap.Error(err))
					examples = nil
				} else {
					RecordArticle(time.Since(began).Seconds())
				}
				select {
				case results <- articleResult{index: i, examples: examples, failed: err != nil}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	// Collector: reorders results back to dataset order and owns all
	// mutable run state.
	summary := Summary{}
	var collectErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		pending := make(map[int]articleResult)
		next := 0
		for result := range results {
			pending[result.index] = result
			for {
				r, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++

				if r.failed {
					summary.ArticlesFailed++
					continue
				}
				summary.Articles++
				for _, example := range r.examples {
					summary.Questions++
					if collectErr == nil {
						if err := writer.Write(example); err != nil {
							collectErr = err
						}
					}
					if vocab != nil {
						vocab.Add(example.ContextTokens, 1)
						vocab.Add(example.QuesTokens, 1)
					}
				}
			}
		}
	}()

	err = g.Wait()
	close(results)
	<-done
	if err != nil {
		return summary, err
	}
	if collectErr != nil {
		return summary, collectErr
	}
	summary.Examples = writer.Count()
	summary.Duration = time.Since(start)

	if vocab != nil {
		if err := vocab.Save(cfg.VocabOut); err != nil {
			return summary, err
		}
		zl.Info("Saved vocabulary",
			zap.String("path", cfg.VocabOut),
			zap.Int("words", len(vocab.Words)),
			zap.Int("chars", len(vocab.Chars)))
	}

	zl.Info("Preprocessing complete",
		zap.Int("articles", summary.Articles),
		zap.Int("articles_failed", summary.ArticlesFailed),
		zap.Int("examples", summary.Examples),
		zap.Duration("duration", summary.Duration))
	return summary, nil
}
