package statesync

import (
	"encoding/json"
	"math"
)

// Message types
const (
	TypeSnapshot = "snapshot"
	TypeSet      = "set"
	TypeChanged  = "changed"
	TypeError    = "error"
)

// Message is the JSON frame exchanged with clients.
type Message struct {
	Type  string         `json:"type"`
	Name  string         `json:"name,omitempty"`
	Value any            `json:"value,omitempty"`
	State map[string]any `json:"state,omitempty"`
	Error string         `json:"error,omitempty"`
}

// decode parses a client frame and normalises whole JSON numbers to int so
// they match values seeded from configuration.
func decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, err
	}
	msg.Value = normalize(msg.Value)
	return msg, nil
}

func normalize(v any) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}
	if f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32 {
		return int(f)
	}
	return f
}
