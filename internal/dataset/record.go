package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SystemPrompt is the fixed system turn carried by every training
// record. The fine-tuned model learns this as its standing instruction.
const SystemPrompt = "You are an AI assistant that provides concise and neutral summaries of election manifesto sections. Focus on key policies and promises."

// userTemplate wraps a chunk's text into the user turn.
const userTemplate = "Please summarize the following section from the election manifesto:\n\n%s"

// Message is one turn of a training exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Record is one fine-tuning example: a fixed three-turn exchange of
// system instruction, user request embedding the chunk, and the model
// response equal to the human summary.
type Record struct {
	Messages []Message `json:"messages"`
}

// NewRecord builds a record for one (chunk, summary) pair. The summary
// is carried verbatim; it is the target output the model learns.
func NewRecord(chunkText, summary string) Record {
	return Record{
		Messages: []Message{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: fmt.Sprintf(userTemplate, chunkText)},
			{Role: "model", Content: summary},
		},
	}
}

// UserContent renders the user turn for a chunk. The draft generator
// uses the same wrapper so drafts match the fine-tuning distribution.
func UserContent(chunkText string) string {
	return fmt.Sprintf(userTemplate, chunkText)
}

// Marshal serializes the dataset as a pretty-printed JSON array.
// HTML escaping is off so manifesto text survives byte-identical.
func Marshal(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("marshal dataset: %w", err)
	}
	return buf.Bytes(), nil
}
