package model

// LegalRequest is the inbound payload for the advice and document workflows.
// DocumentType is optional for advice and required for document generation;
// the service enforces the latter so the check happens before any network call.
type LegalRequest struct {
	Prompt         string  `json:"prompt" validate:"required"`
	DocumentType   *string `json:"document_type,omitempty"`
	Context        *string `json:"context,omitempty"`
	IsConfidential *bool   `json:"is_confidential,omitempty"`
}

// LegalResponse is the outbound payload for both workflows. RequestID is a
// timestamp string for advice and the stored document key for document
// generation.
type LegalResponse struct {
	Response  string  `json:"response"`
	Document  *string `json:"document,omitempty"`
	Status    string  `json:"status"`
	RequestID *string `json:"request_id,omitempty"`
}

// UpdateNameRequest is the inbound payload for renaming the caller's profile.
type UpdateNameRequest struct {
	Name string `json:"name" validate:"required"`
}
