package chat

import "regexp"

// DefaultSystemPrompt is the assistant persona used for conversations unless
// configured otherwise.
const DefaultSystemPrompt = "You are a helpful assistant."

// SeedTitle names the conversation synthesized on first run or after the
// collection would otherwise become empty.
const SeedTitle = "Welcome"

// Conversation is one named thread of messages with its own persona prompt.
// Field names and nesting match the persisted snapshot shape exactly;
// CreatedAt is epoch milliseconds.
type Conversation struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	SystemPrompt string    `json:"systemPrompt"`
	Messages     []Message `json:"messages"`
	CreatedAt    int64     `json:"createdAt"`
}

var numberedChatRe = regexp.MustCompile(`(?i)^chat\s\d+$`)
var welcomeRe = regexp.MustCompile(`(?i)welcome`)

// HasGenericTitle reports whether the conversation still carries a
// placeholder title ("Chat N", "Welcome", or none) that should be replaced
// by an inferred one.
func (c Conversation) HasGenericTitle() bool {
	return c.Title == "" || numberedChatRe.MatchString(c.Title) || welcomeRe.MatchString(c.Title)
}

// MessageByID returns the index of the message with the given id, or -1.
func (c Conversation) MessageByID(id string) int {
	for i, m := range c.Messages {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// clone returns a deep copy so callers never alias the store's slices.
func (c Conversation) clone() Conversation {
	out := c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}
