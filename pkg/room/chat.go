package room

import "time"

const chatLogLimit = 25

type chatMessage struct {
	Sender  string    `json:"sender"`
	Message string    `json:"message"`
	Sent    time.Time `json:"sent"`
}

func newChatMessage(sender, message string) *chatMessage {
	return &chatMessage{
		Sender:  sender,
		Message: message,
		Sent:    time.Now(),
	}
}

// addChatMessage appends a chat message, keeping only the most recent ones
// Note: this must only be called from within the run loop
func (d *Dealer) addChatMessage(msg *chatMessage) {
	m := append(d.chatLog, msg)
	if count := len(m); count > chatLogLimit {
		m = m[count-chatLogLimit:]
	}

	d.chatLog = m
}
