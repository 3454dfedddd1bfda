package chat

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one immutable entry of a conversation log. Options is set only
// on bot messages that open a numbered selection window.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId,omitempty"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Options   []string  `json:"options,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HasOptions reports whether the message opens a selection window.
func (m Message) HasOptions() bool {
	return len(m.Options) > 0
}
