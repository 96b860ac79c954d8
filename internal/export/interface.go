// Package export writes canonical conversations to files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MikeSquared-Agency/convoview/internal/normalize"
)

// Exporter renders one conversation in a single format.
type Exporter interface {
	Export(conv normalize.Conversation, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName derives a file name for conv that is safe on any filesystem.
func FileName(conv normalize.Conversation, ext string) string {
	base := unsafeFileChars.ReplaceAllString(conv.ID, "_")
	if base == "" || base == "." || base == ".." {
		base = "conversation"
	}
	return base + "." + ext
}

// WriteAll exports every conversation into dir, one file each, and returns
// the paths written. Names that collide get a _1, _2, ... suffix.
func WriteAll(convs []normalize.Conversation, exp Exporter, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	used := make(map[string]bool, len(convs))
	paths := make([]string, 0, len(convs))
	for _, conv := range convs {
		path := filepath.Join(dir, uniqueName(FileName(conv, exp.Extension()), used))
		if err := writeFile(path, conv, exp); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func uniqueName(name string, used map[string]bool) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 1; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d%s", base, n, ext)
	}
	used[candidate] = true
	return candidate
}

func writeFile(path string, conv normalize.Conversation, exp Exporter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := exp.Export(conv, f); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", conv.ID, err)
	}
	return f.Close()
}
