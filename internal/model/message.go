package model

// MessageType tells who authored a chat message.
type MessageType string

const (
	MessageUser MessageType = "user"
	MessageBot  MessageType = "bot"
)

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	return t == MessageUser || t == MessageBot
}

// ChatMessage is a single entry in a chat log. List order is display order.
type ChatMessage struct {
	Text string      `json:"text"`
	Type MessageType `json:"type"`
}
