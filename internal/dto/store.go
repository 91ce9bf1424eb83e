package dto

import "encoding/json"

// StoreRequest single-endpoint mutation.
type StoreRequest struct {
	Action  string          `json:"action"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// StoreError error marker returned with status 200.
type StoreError struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// StoreDeleted delete acknowledgement.
type StoreDeleted struct {
	ID uint `json:"id"`
}
