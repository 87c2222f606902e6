package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/sumforge/internal/config"
)

var (
	flagInput       string
	flagReassembled string
	flagChunks      string
	flagSummaries   string
	flagDataset     string
)

var rootCmd = &cobra.Command{
	Use:   "sumforge",
	Short: "Build a fine-tuning dataset from a scanned manifesto",
	Long: `Sumforge turns a scanned election manifesto into a chat-style
fine-tuning dataset in three phases:

  1. process (default): reassemble OCR output into readable text and
     split it into numbered chunks for human review
  2. draft (optional): pre-fill a summaries file with machine drafts
  3. merge: pair the edited chunks with one summary per line and emit
     the training records as a JSON array

Between process and merge, edit the chunk file by hand (keep the
'--- CHUNK n ---' markers intact) and write one summary per line in
the summaries file.`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagInput, "input", "", "input document: OCR export .json, or .txt/.md/.html/.pdf/.docx")
	pf.StringVar(&flagReassembled, "reassembled", "", "path for the reassembled text artifact")
	pf.StringVar(&flagChunks, "chunks", "", "path for the marked chunk file")
	pf.StringVar(&flagSummaries, "summaries", "", "path of the summaries file (one per line)")
	pf.StringVar(&flagDataset, "output", "", "path for the training dataset JSON")

	rootCmd.AddCommand(processCmd, mergeCmd, draftCmd, serveCmd, versionCmd)
}

// loadConfig merges environment config with any path flags set on the
// command line. Flags win.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputPath = flagInput
	}
	if flags.Changed("reassembled") {
		cfg.ReassembledPath = flagReassembled
	}
	if flags.Changed("chunks") {
		cfg.ChunksPath = flagChunks
	}
	if flags.Changed("summaries") {
		cfg.SummariesPath = flagSummaries
	}
	if flags.Changed("output") {
		cfg.DatasetPath = flagDataset
	}
	return cfg
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
