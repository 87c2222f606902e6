package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sumforge/internal/pipeline"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge edited chunks with summaries into the training dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		p := pipeline.New(cfg, newLogger())

		res, err := p.Merge(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Successfully created fine-tuning data at %s\n", res.DatasetPath)
		fmt.Printf("Total records created: %d\n", res.Records)
		return nil
	},
}
