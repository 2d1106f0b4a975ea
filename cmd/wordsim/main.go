package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/baditaflorin/l"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_word_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_word_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_word_similarity/internal/adapters/params"
	"github.com/baditaflorin/go_word_similarity/internal/adapters/stream"
	"github.com/baditaflorin/go_word_similarity/internal/core/domain"
	"github.com/baditaflorin/go_word_similarity/internal/core/features"
	"github.com/baditaflorin/go_word_similarity/internal/ports"
	"github.com/baditaflorin/go_word_similarity/internal/training"
	"github.com/baditaflorin/go_word_similarity/pkg/wordsim"
)

var (
	paramsFile   string
	outputFormat string
	verbose      bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordsim",
		Short: "Score word pairs for possessive/plural variant similarity",
		Long: `wordsim predicts a similarity score in [0,1] for pairs of short strings
using four string features and a standardized logistic regression model.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&paramsFile, "params", "", "model parameter artifact (.json/.yaml); empty = shipped model")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log computation steps to stderr")

	rootCmd.AddCommand(newScoreCmd(), newFeaturesCmd(), newBatchCmd(), newTrainCmd(), newParamsCmd())
	return rootCmd
}

// newLogger returns the CLI logger and, when verbose, the underlying
// l.Logger so the scorer logs through the same sink.
func newLogger() (ports.Logger, l.Logger, error) {
	if !verbose {
		return logger.NewNopLogger(), nil, nil
	}
	cfg := logger.DefaultConfig(os.Stderr, false)
	cfg.AsyncWrite = false
	lg, err := l.NewStandardFactory().CreateLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return logger.FromExisting(lg), lg, nil
}

func newScorer(log ports.Logger, lg l.Logger) (*wordsim.Scorer, error) {
	opts := []wordsim.Option{}
	if lg != nil {
		opts = append(opts, wordsim.WithLogger(lg))
	}
	if paramsFile != "" {
		opts = append(opts, wordsim.WithParamsFile(paramsFile))
	}
	s, err := wordsim.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	log.Debug("Scorer ready", "params", paramsFile)
	return s, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <word1> <word2>",
		Short: "Predict the similarity score of a pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, lg, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Close()
			scorer, err := newScorer(log, lg)
			if err != nil {
				return err
			}

			result, err := scorer.Explain(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if outputFormat == "json" {
				return printJSON(out, map[string]interface{}{
					"word1":    args[0],
					"word2":    args[1],
					"score":    result.Score,
					"passed":   result.Passed,
					"logit":    result.Logit,
					"features": result.Features.Map(),
					"details":  result.Details,
				})
			}
			fmt.Fprintf(out, "Pair: '%s' vs. '%s' (lengths: %d, %d): Score = %.3f\n",
				args[0], args[1], len([]rune(args[0])), len([]rune(args[1])), result.Score)
			return nil
		},
	}
}

func newFeaturesCmd() *cobra.Command {
	var ngram int
	cmd := &cobra.Command{
		Use:   "features <word1> <word2>",
		Short: "Print the feature vector of a pair",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, _, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Close()

			extractor, err := features.NewExtractor(features.ExtractorConfig{NGramSize: ngram}, log, normalizer.NewDefaultNormalizer())
			if err != nil {
				return err
			}
			v := extractor.Extract(domain.StringPair{Word1: args[0], Word2: args[1]})

			out := cmd.OutOrStdout()
			if outputFormat == "json" {
				return printJSON(out, v.Map())
			}
			for i, name := range domain.FeatureNames {
				fmt.Fprintf(out, "%-10s %.6f\n", name, v[i])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&ngram, "ngram", features.DefaultNGramSize, "n-gram size for jaccard and dice")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var workers, precision int
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Score tab-separated pairs from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, lg, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Close()
			scorer, err := newScorer(log, lg)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			proc := stream.NewProcessor(scorer, log, stream.BatchConfig{Workers: workers, Precision: precision})
			stats, err := proc.Process(cmd.Context(), in, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			log.Info("Batch done", "pairs", stats.Pairs, "duration", stats.ProcessingTime)
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "scoring goroutines (0 = number of CPUs)")
	cmd.Flags().IntVar(&precision, "precision", stream.DefaultBatchConfig().Precision, "decimals per score")
	return cmd
}

func newTrainCmd() *cobra.Command {
	var out string
	var cfg training.Config
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit the model on the built-in labelled corpus and write the artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, _, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Close()

			extractor, err := features.NewExtractor(features.DefaultConfig(), log, normalizer.NewDefaultNormalizer())
			if err != nil {
				return err
			}
			trainer, err := training.NewTrainer(cfg, log, extractor)
			if err != nil {
				return err
			}

			start := time.Now()
			report, err := trainer.Fit(cmd.Context(), training.DefaultCorpus)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				format := params.FormatYAML
				if outputFormat == "json" {
					format = params.FormatJSON
				}
				return params.Encode(cmd.OutOrStdout(), report.Params, format)
			}
			if err := params.WriteFile(out, report.Params); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Model written to %s (iterations=%d loss=%.4f converged=%t in %s)\n",
				out, report.Iterations, report.Loss, report.Converged, time.Since(start))
			return nil
		},
	}
	def := training.DefaultConfig()
	cmd.Flags().StringVar(&out, "out", "", "artifact path (.json/.yaml); empty = stdout")
	cmd.Flags().Float64Var(&cfg.C, "c", def.C, "inverse L2 regularization strength")
	cmd.Flags().Float64Var(&cfg.LearningRate, "learning-rate", def.LearningRate, "gradient descent step size")
	cmd.Flags().IntVar(&cfg.MaxIter, "max-iter", def.MaxIter, "maximum gradient descent iterations")
	cmd.Flags().Float64Var(&cfg.Tolerance, "tol", def.Tolerance, "stop when the largest gradient component is below this")
	return cmd
}

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params [file]",
		Short: "Validate and print a model artifact (default: shipped model)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := params.Default()
			if len(args) == 1 {
				loaded, err := params.LoadFile(args[0])
				if err != nil {
					return err
				}
				p = loaded
			}
			format := params.FormatYAML
			if outputFormat == "json" {
				format = params.FormatJSON
			}
			return params.Encode(cmd.OutOrStdout(), p, format)
		},
	}
}
