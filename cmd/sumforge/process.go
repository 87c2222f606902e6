package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sumforge/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Reassemble the input document and write chunks for review",
	Args:  cobra.NoArgs,
	RunE:  runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	p := pipeline.New(cfg, newLogger())

	res, err := p.Process(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Created %d chunks in %s\n", res.Chunks, res.ChunksPath)
	fmt.Printf("Full reassembled text saved to %s\n", res.ReassembledPath)
	fmt.Println()
	fmt.Printf("Next: edit %s (keep the markers intact), write one summary\n", res.ChunksPath)
	fmt.Printf("per line in %s, then run 'sumforge merge'.\n", cfg.SummariesPath)
	return nil
}
