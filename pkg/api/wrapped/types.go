package wrapped

import (
	"encoding/json"

	"pacelane/api_wrapped/pkg/models"
)

// WrappedResponse represents the response from GetWrapped and PreviewWrapped
type WrappedResponse = models.PostsWrappedData

// PreviewRequest represents the body of PreviewWrapped
type PreviewRequest struct {
	Data      json.RawMessage `json:"data"`
	Reactions json.RawMessage `json:"reactions,omitempty"`
	Year      int             `json:"year,omitempty"`
	Locale    string          `json:"locale,omitempty"`
}

// ErrorResponse represents an error payload
type ErrorResponse struct {
	Error string `json:"error"`
}
