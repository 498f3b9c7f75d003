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
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/antflydb/dropset"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Preprocess a DROP dataset into derivation examples",
	Long: `Read a DROP-format JSON dataset and write one NDJSON example per
question, annotated with every answer derivation found in the passage:
token spans, signed add/sub expressions over passage numbers, and counts.

Examples:
  # Preprocess the training split
  dropset preprocess --input drop_dataset_train.json --output train.ndjson

  # Also emit word/char vocabulary counts
  dropset preprocess --input drop_dataset_train.json --output train.ndjson \
    --vocab-out vocab.json

  # Watch a long run from Prometheus
  dropset preprocess --input drop_dataset_train.json --output train.ndjson \
    --metrics-port 4200`,
	RunE: runPreprocess,
}

func init() {
	rootCmd.AddCommand(preprocessCmd)

	preprocessCmd.Flags().String("input", "", "DROP dataset JSON file (required)")
	preprocessCmd.Flags().String("output", "", "output NDJSON file (required)")
	preprocessCmd.Flags().String("vocab-out", "", "write word/char vocabulary counts to this file")
	preprocessCmd.Flags().Int("workers", 0, "parallel article workers (default: number of CPUs)")
	preprocessCmd.Flags().Int("max-terms", 0, "max numbers per add/sub expression (default 2)")
	preprocessCmd.Flags().Int("max-count", 0, "exclusive upper bound for count answers (default 100000)")
	preprocessCmd.Flags().Duration("cache-ttl", 0, "tokenization cache TTL (default 2m)")
	preprocessCmd.Flags().Int("metrics-port", 0, "serve /metrics and /healthz on this port (0 disables)")

	mustBindPFlag("input", preprocessCmd.Flags().Lookup("input"))
	mustBindPFlag("output", preprocessCmd.Flags().Lookup("output"))
	mustBindPFlag("vocab_out", preprocessCmd.Flags().Lookup("vocab-out"))
	mustBindPFlag("workers", preprocessCmd.Flags().Lookup("workers"))
	mustBindPFlag("max_terms", preprocessCmd.Flags().Lookup("max-terms"))
	mustBindPFlag("max_count", preprocessCmd.Flags().Lookup("max-count"))
	mustBindPFlag("cache_ttl", preprocessCmd.Flags().Lookup("cache-ttl"))
	mustBindPFlag("metrics_port", preprocessCmd.Flags().Lookup("metrics-port"))

	_ = preprocessCmd.MarkFlagRequired("input")
	_ = preprocessCmd.MarkFlagRequired("output")
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()
	defer func() {
		_ = logger.Sync()
	}()

	dropset.Version = Version

	cfg := dropset.Config{
		Input:       viper.GetString("input"),
		Output:      viper.GetString("output"),
		VocabOut:    viper.GetString("vocab_out"),
		Workers:     viper.GetInt("workers"),
		MaxTerms:    viper.GetInt("max_terms"),
		MaxCount:    viper.GetInt("max_count"),
		CacheTTL:    viper.GetDuration("cache_ttl"),
		MetricsPort: viper.GetInt("metrics_port"),
	}

	summary, err := dropset.Run(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("Done",
		zap.Int("articles", summary.Articles),
		zap.Int("articles_failed", summary.ArticlesFailed),
		zap.Int("examples", summary.Examples),
		zap.Duration("duration", summary.Duration.Round(time.Millisecond)))
	return nil
}
