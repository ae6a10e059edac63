package event

import (
	"encoding/json"

	"trustlend-backend/pkg/id"
)

// New builds an event with a fresh id and a JSON-encoded payload.
func New(agreementID, eventType string, payload any) (*Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		EventID:     id.NewID32(),
		AgreementID: agreementID,
		Type:        eventType,
		Payload:     string(b),
	}, nil
}
