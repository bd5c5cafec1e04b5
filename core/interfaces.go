// Package core defines the listing ingestion pipeline interfaces and the
// normalized property record shared by every stage.
// Each stage of the pipeline is a clean, testable interface.
package core

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"

	"github.com/Fichusgg/casa-score-br/core/parse"
)

// FetchResult holds the raw markup and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Address is the coarse location of a listing.
type Address struct {
	Bairro string `json:"bairro"`
	Cidade string `json:"cidade"`
	Estado string `json:"estado"`
}

// Listing is the normalized property record produced by a successful ingestion.
// Bedrooms is nil when the page gives no bedroom count; a studio is a
// non-nil zero.
type Listing struct {
	Title    string  `json:"title"`
	Price    int     `json:"price"`
	AreaM2   int     `json:"area_m2"`
	Bedrooms *int    `json:"bedrooms,omitempty"`
	Address  Address `json:"address"`
}

// Fetcher retrieves raw markup from a URL. Implementations make exactly one
// request per call and report non-2xx responses as errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor reads a Listing out of a parsed page. It never fails: fields
// that cannot be found are replaced by their defaults.
type Extractor interface {
	Extract(doc *parse.Document) Listing
}

// Normalizer converts HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts an ingestion Outcome into a final output format.
type Renderer interface {
	Render(outcome Outcome) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
