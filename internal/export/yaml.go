package export

import (
	"io"

	"github.com/MikeSquared-Agency/convoview/internal/normalize"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports conversations in YAML format
type YAMLExporter struct{}

func (e *YAMLExporter) Export(conv normalize.Conversation, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(conv)
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
