package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/MikeSquared-Agency/convoview/internal/normalize"
)

// MarkdownExporter exports conversations as readable Markdown.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(conv normalize.Conversation, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", conv.Title); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "**ID:** %s  \n", conv.ID)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", conv.MessageCount)
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range conv.Messages {
		timestamp := ""
		if msg.CreatedAt != "" {
			timestamp = fmt.Sprintf(" (%s)", msg.CreatedAt)
		}

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", msg.Role, timestamp, escapeMarkdown(msg.Text))

		for _, att := range msg.Attachments {
			_, _ = fmt.Fprintf(w, "- %s\n", attachmentLink(att))
		}
		if len(msg.Attachments) > 0 {
			_, _ = fmt.Fprintln(w)
		}

		if i < len(conv.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func attachmentLink(att normalize.Attachment) string {
	name, url := "attachment", ""
	if att.Name != nil && *att.Name != "" {
		name = *att.Name
	}
	if att.URL != nil {
		url = *att.URL
	}
	if url == "" {
		return name
	}
	return fmt.Sprintf("[%s](%s)", name, url)
}

// escapeMarkdown escapes bold/underline markers outside code fences.
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))
	inCodeBlock := false

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			inCodeBlock = !inCodeBlock
		case !inCodeBlock:
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
		}
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}
