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

import "github.com/prometheus/client_golang/prometheus"

var (
	articlesProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "antfly",
			Subsystem: "dropset",
			Name:      "articles_processed_total",
			Help:      "The total number of articles preprocessed.",
		},
	)
	articlesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "antfly",
			Subsystem: "dropset",
			Name:      "articles_failed_total",
			Help:      "The total number of articles skipped due to token alignment failures.",
		},
	)
	questionsProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "antfly",
			Subsystem: "dropset",
			Name:      "questions_processed_total",
			Help:      "The total number of question/answer pairs preprocessed.",
		},
	)
	questionsUnderivable = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "antfly",
			Subsystem: "dropset",
			Name:      "questions_underivable_total",
			Help:      "Questions for which no answering strategy produced a derivation.",
		},
	)

	derivationsFound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "antfly",
			Subsystem: "dropset",
			Name:      "derivations_found_total",
			Help:      "The total number of answer derivations found.",
		},
		[]string{"kind"}, // span, add_sub, count
	)

	articleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "antfly",
			Subsystem: "dropset",
			Name:      "article_duration_seconds",
			Help:      "Time spent preprocessing one article.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "antfly",
			Subsystem: "dropset",
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits.",
		},
		[]string{"type"}, // tokenize
	)
	cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "antfly",
			Subsystem: "dropset",
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(articlesProcessed)
	prometheus.MustRegister(articlesFailed)
	prometheus.MustRegister(questionsProcessed)
	prometheus.MustRegister(questionsUnderivable)
	prometheus.MustRegister(derivationsFound)
	prometheus.MustRegister(articleDuration)
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
}

// RecordArticle records one preprocessed article and its duration.
func RecordArticle(seconds float64) {
	articlesProcessed.Inc()
	articleDuration.Observe(seconds)
}

// RecordArticleFailure records an article skipped on alignment failure.
func RecordArticleFailure() {
	articlesFailed.Inc()
}

// RecordQuestion records one preprocessed question and how many derivations
// each strategy found for it.
func RecordQuestion(spans, addSub, counts int) {
	questionsProcessed.Inc()
	derivationsFound.WithLabelValues("span").Add(float64(spans))
	derivationsFound.WithLabelValues("add_sub").Add(float64(addSub))
	derivationsFound.WithLabelValues("count").Add(float64(counts))
	if spans == 0 && addSub == 0 && counts == 0 {
		questionsUnderivable.Inc()
	}
}

// RecordCacheHit increments the cache hit counter
func RecordCacheHit(cacheType string) {
	cacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss increments the cache miss counter
func RecordCacheMiss(cacheType string) {
	cacheMisses.WithLabelValues(cacheType).Inc()
}
