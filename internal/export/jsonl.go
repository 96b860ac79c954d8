package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MikeSquared-Agency/convoview/internal/normalize"
)

// JSONLExporter exports one message per line
type JSONLExporter struct{}

func (e *JSONLExporter) Export(conv normalize.Conversation, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range conv.Messages {
		obj := map[string]any{
			"conversation_id": conv.ID,
			"role":            msg.Role,
			"text":            msg.Text,
		}
		if msg.CreatedAt != "" {
			obj["created_at"] = msg.CreatedAt
		}
		if len(msg.Attachments) > 0 {
			obj["attachments"] = msg.Attachments
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
