package draft

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/sumforge/internal/chunk"
)

// Generate produces one draft summary per chunk, in ordinal order.
// Calls are sequential: chunk order must map onto line order, and a
// manifesto has few enough chunks that parallelism buys nothing.
func Generate(ctx context.Context, c *Client, chunks []chunk.Chunk, log *slog.Logger) ([]string, error) {
	summaries := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		summary, err := c.Summarize(ctx, ch.Text)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", ch.Ordinal, err)
		}
		if summary == "" {
			return nil, fmt.Errorf("chunk %d: model returned an empty draft", ch.Ordinal)
		}
		log.Info("drafted summary", "chunk", ch.Ordinal, "chars", len(summary))
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
