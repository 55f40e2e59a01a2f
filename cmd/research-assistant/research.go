// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/completion"
	"github.com/pdiddy/research-assistant/internal/config"
	"github.com/pdiddy/research-assistant/internal/note"
	"github.com/pdiddy/research-assistant/internal/research"
	"github.com/pdiddy/research-assistant/internal/search"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [query...]",
	Short: "Research a question using web search and a language model",
	Long: `Research searches the web for the query, asks the configured model to
write a research note from the results, and prints the note. Sources the
model omits are filled in from URLs found in the search results.

The query is the remaining arguments joined by spaces.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func init() {
	f := researchCmd.Flags()
	f.String("format", "json", "output format: json, yaml, or text")
	f.StringP("output", "o", "", "write the note to this file instead of stdout")
	f.String("provider", "gemini", "completion backend: gemini or claude")
	f.String("model", "", "model identifier (default depends on provider)")
	f.Float64("temperature", config.DefaultTemperature, "sampling temperature")
	f.Int("max-results", config.DefaultMaxResults, "number of search results to request")

	viper.BindPFlag(config.KeyProvider, f.Lookup("provider"))
	viper.BindPFlag(config.KeyModel, f.Lookup("model"))
	viper.BindPFlag(config.KeyTemperature, f.Lookup("temperature"))
	viper.BindPFlag(config.KeyMaxResults, f.Lookup("max-results"))

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	formatFlag, _ := cmd.Flags().GetString("format")
	format := note.Format(strings.ToLower(formatFlag))
	if !format.Valid() {
		return fmt.Errorf("unsupported format %q: use json, yaml, or text", formatFlag)
	}
	outPath, _ := cmd.Flags().GetString("output")

	cfg, err := config.Load(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	logger.Info("configuration loaded", config.Fields(cfg)...)

	ctx := cmd.Context()
	cp, err := completion.New(ctx, cfg.Completion, logger)
	if err != nil {
		return fmt.Errorf("creating completion provider: %w", err)
	}
	assistant := research.New(search.NewSerpAPI(cfg.Search, logger), cp, logger)

	result, err := assistant.Run(ctx, query)
	if err != nil {
		return err
	}

	if outPath == "" {
		if err := note.Write(cmd.OutOrStdout(), result, format); err != nil {
			return fmt.Errorf("writing note: %w", err)
		}
		return nil
	}
	if err := writeNoteFile(outPath, result, format); err != nil {
		return err
	}
	logger.Info("note written", zap.String("path", outPath))
	return nil
}

// writeNoteFile renders n into path. A failed close is reported, since the
// buffered note may not have reached the disk.
func writeNoteFile(path string, n types.ResearchNote, format note.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := note.Write(f, n, format); err != nil {
		f.Close()
		return fmt.Errorf("writing note: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
