package export

import (
	"encoding/json"
	"io"

	"github.com/MikeSquared-Agency/convoview/internal/normalize"
)

// JSONExporter exports conversations as pretty-printed JSON.
type JSONExporter struct{}

func (e *JSONExporter) Export(conv normalize.Conversation, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(conv)
}

func (e *JSONExporter) Extension() string {
	return "json"
}
