// JSON renderer.
// Serializes an Outcome into the service boundary shapes: the listing on
// success, {error, message, platform} when blocked and {error} otherwise.

package render

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Fichusgg/casa-score-br/core"
)

// BlockedCode is the error code of a blocked outcome.
const BlockedCode = "SCRAPING_BLOCKED"

// BlockedBody is the boundary shape of a blocked outcome.
type BlockedBody struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Platform string `json:"platform"`
}

// ErrorBody is the boundary shape of any other failure.
type ErrorBody struct {
	Error string `json:"error"`
}

// Response maps an outcome to its HTTP status and JSON body value.
func Response(o core.Outcome) (int, any) {
	switch o.Kind {
	case core.KindSuccess:
		if o.Listing != nil {
			return http.StatusOK, o.Listing
		}
	case core.KindBlocked:
		return http.StatusForbidden, BlockedBody{
			Error:    BlockedCode,
			Message:  o.Message(),
			Platform: o.Platform.String(),
		}
	}
	return http.StatusBadRequest, ErrorBody{Error: o.Message()}
}

// JSONRenderer produces the boundary JSON for an outcome.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the outcome's boundary body.
func (r *JSONRenderer) Render(o core.Outcome) ([]byte, error) {
	_, body := Response(o)
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
