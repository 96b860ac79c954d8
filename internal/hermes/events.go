package hermes

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubjectArchiveLoaded is published once an export document has been loaded.
const SubjectArchiveLoaded = "convoview.archive.loaded"

// ArchiveLoaded announces a freshly loaded archive.
type ArchiveLoaded struct {
	EventID       string `json:"event_id"`
	Source        string `json:"source"`
	Conversations int    `json:"conversations"`
	Messages      int    `json:"messages"`
	Timestamp     string `json:"timestamp"`
}

func NewArchiveLoaded(source string, conversations, messages int, now time.Time) ArchiveLoaded {
	return ArchiveLoaded{
		EventID:       uuid.New().String(),
		Source:        source,
		Conversations: conversations,
		Messages:      messages,
		Timestamp:     now.UTC().Format(time.RFC3339),
	}
}

// AnnounceLoaded publishes ev on SubjectArchiveLoaded.
func AnnounceLoaded(p Publisher, ev ArchiveLoaded) error {
	if err := p.Publish(SubjectArchiveLoaded, ev); err != nil {
		return fmt.Errorf("publish %s: %w", SubjectArchiveLoaded, err)
	}
	return nil
}
