package comm

import (
	"encoding/json"
)

// Message is the envelope for everything the catalog service exchanges
// over NATS.
type Message struct {
	Type string          `json:"type"` // e.g. "card-created", "get-card"
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	TypeCardCreated       = "card-created"
	TypeGetCard           = "get-card"
	TypeGetCardResponse   = "get-card-response"
	TypeListCards         = "list-cards"
	TypeListCardsResponse = "list-cards-response"
	TypeError             = "error"
)

type CardRequest struct {
	ID int64 `json:"id"`
}

type ErrorData struct {
	Error string `json:"error"`
}

// NewMessage marshals data into a Message of type t.
func NewMessage(t string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: t, Data: raw})
}
