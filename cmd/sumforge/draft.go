package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sumforge/internal/draft"
	"github.com/dgallion1/sumforge/internal/pipeline"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate machine draft summaries for the chunk file",
	Long: `Generate one draft summary per chunk and write them to the
summaries file, one per line. Drafts use the same prompts as the
training records; review and edit them before running merge.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		if err := cfg.ValidateDraft(); err != nil {
			return err
		}

		client := draft.NewClient(draft.Config{
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.OpenAIModel,
			MaxRetries: cfg.DraftMaxRetries,
			RetryDelay: cfg.DraftRetryDelay,
			Timeout:    cfg.DraftTimeout,
		})
		p := pipeline.New(cfg, newLogger())

		res, err := p.Draft(cmd.Context(), client)
		if err != nil {
			return err
		}

		fmt.Printf("Wrote %d draft summaries to %s\n", res.Summaries, res.SummariesPath)
		fmt.Println("Review and edit them before running 'sumforge merge'.")
		return nil
	},
}
