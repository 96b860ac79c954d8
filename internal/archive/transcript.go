package archive

import (
	"strings"

	"github.com/MikeSquared-Agency/convoview/internal/normalize"
)

// FormatTranscript renders messages as a Human:/Assistant: transcript.
func FormatTranscript(msgs []normalize.GraphMessage) string {
	var sb strings.Builder
	for _, msg := range msgs {
		switch msg.Role {
		case normalize.RoleUser:
			sb.WriteString("Human: ")
		case normalize.RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			sb.WriteString(msg.Role + ": ")
		}
		sb.WriteString(msg.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
