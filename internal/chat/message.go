package chat

// Sender role attribution for a message.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message is one turn authored by the user or the assistant. Text carries
// either literal user input or assistant content; when IsStructured is set
// the text is a sanitized, pre-escaped structural representation that must
// not be escaped again on render.
type Message struct {
	ID           string `json:"id"`
	Sender       string `json:"sender"`
	Text         string `json:"text"`
	IsStructured bool   `json:"isStructured,omitempty"`
	Liked        bool   `json:"liked,omitempty"`
}

// MessagePatch carries the mutable message fields for UpdateMessage. Nil
// fields are left untouched.
type MessagePatch struct {
	Text  *string
	Liked *bool
}
