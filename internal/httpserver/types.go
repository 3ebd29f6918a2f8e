package httpserver

import (
	"go-variant-cache/internal/models"
	"go-variant-cache/internal/page"
)

// CreateSessionRequest represents a session creation request
type CreateSessionRequest struct {
	Product       models.Product `json:"product"`
	InitialMarkup string         `json:"initial_markup"` // Initially rendered page
	CardEmbed     bool           `json:"card_embed,omitempty"`
}

// CreateSessionResponse represents a session creation response
type CreateSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SelectRequest represents a selection resolution request
type SelectRequest struct {
	ValueID string `json:"value_id"`
}

// SelectResponse represents a selection resolution response
type SelectResponse struct {
	Success      bool   `json:"success"`
	VariantParam string `json:"variant_param,omitempty"`
	Path         string `json:"path,omitempty"`
	Error        string `json:"error,omitempty"`
}

// HoverRequest represents a hover intent request
type HoverRequest struct {
	ValueID string `json:"value_id"`
}

// StateResponse represents a session state response
type StateResponse struct {
	Success bool          `json:"success"`
	State   page.Snapshot `json:"state"`
	Cached  int           `json:"cached"` // fragments visible to the session
}
