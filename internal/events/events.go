// Package events publishes ledger events to RabbitMQ.
package events

import (
	"encoding/json"
	"time"
)

// ExpenseCreated is published after an expense and its shares are committed.
// It carries identifiers only; consumers read amounts from the ledger.
type ExpenseCreated struct {
	ExpenseID      string    `json:"expense_id"`
	Name           string    `json:"name"`
	TotalAmount    string    `json:"total_amount"`
	CreatorID      string    `json:"creator_id"`
	PayerID        string    `json:"payer_id"`
	ParticipantIDs []string  `json:"participant_ids"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToJSON converts the event to JSON bytes.
func (e ExpenseCreated) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseCreatedFromJSON decodes an event body.
func ExpenseCreatedFromJSON(data []byte) (*ExpenseCreated, error) {
	var e ExpenseCreated
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
