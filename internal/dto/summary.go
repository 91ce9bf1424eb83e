package dto

import "encoding/json"

// SummaryRequest relay input; field names are those of the public relay contract.
type SummaryRequest struct {
	Data       []json.RawMessage `json:"data"`
	ReportType string            `json:"reportType"`
}

// SummaryResponse relay success body.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// SummaryError relay failure body.
type SummaryError struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
