package amqp

import (
	"encoding/json"
	"time"
)

// ListFinalizedMessage announces that a list was finalized and archived.
// It carries just enough for the export worker; the worker fetches the full
// record from the store.
type ListFinalizedMessage struct {
	ListID      string    `json:"list_id"`
	Name        string    `json:"name"`
	Items       int       `json:"items"`
	TotalCents  int64     `json:"total_cents"`
	FinalizedAt time.Time `json:"finalized_at"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewListFinalizedMessage(listID, name string, items int, totalCents int64, finalizedAt time.Time) *ListFinalizedMessage {
	return &ListFinalizedMessage{
		ListID:      listID,
		Name:        name,
		Items:       items,
		TotalCents:  totalCents,
		FinalizedAt: finalizedAt,
		Timestamp:   time.Now(),
	}
}

func (m *ListFinalizedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ListFinalizedMessageFromJSON(data []byte) (*ListFinalizedMessage, error) {
	var msg ListFinalizedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
