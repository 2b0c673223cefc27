package notification

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message is one outbound notification as handed to the delivery worker
type Message struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	IsHTML    bool      `json:"isHtml"`
	Timestamp time.Time `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes
func (m Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageFromJSON decodes a message and rejects ones without a recipient
func MessageFromJSON(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, err
	}
	if msg.Recipient == "" {
		return Message{}, fmt.Errorf("message has no recipient")
	}
	return msg, nil
}
