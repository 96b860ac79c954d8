// Package normalize turns loosely shaped conversation exports into canonical
// conversations. Nothing in this package returns an error: malformed input
// degrades to empty or default fields for the unit that was malformed.
package normalize

// Roles a canonical message can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AttachmentURLPrefix is the backend route that serves local attachment files.
const AttachmentURLPrefix = "/api/attachment/"

// Conversation is the canonical form of one exported conversation.
type Conversation struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	MessageCount int       `json:"message_count" yaml:"message_count"`
	Messages     []Message `json:"messages" yaml:"messages"`
}

// Message is the canonical form of one message, whatever its source shape.
type Message struct {
	Role        string       `json:"role" yaml:"role"`
	Text        string       `json:"text" yaml:"text"`
	CreatedAt   string       `json:"created_at" yaml:"created_at"`
	Attachments []Attachment `json:"attachments" yaml:"attachments"`
}

// Attachment references a file attached to a message. Name and URL are nil
// when the source carried nothing usable for them.
type Attachment struct {
	Name *string `json:"name" yaml:"name"`
	URL  *string `json:"url" yaml:"url"`
}

// GraphMessage is a message recovered from a node mapping. ID is the node id.
type GraphMessage struct {
	ID   string `json:"id" yaml:"id"`
	Role string `json:"role" yaml:"role"`
	Text string `json:"text" yaml:"text"`
}
