package core

import (
	"fmt"

	"github.com/Fichusgg/casa-score-br/core/platform"
)

// Kind tags which variant an Outcome holds.
type Kind string

const (
	KindSuccess Kind = "success"
	KindBlocked Kind = "blocked"
	KindFailure Kind = "failure"
)

// ErrorKind classifies a failed ingestion.
type ErrorKind string

const (
	// UnsupportedPlatform means the URL matched no known marketplace. Not retryable.
	UnsupportedPlatform ErrorKind = "unsupported_platform"
	// NetworkError is a transport failure (DNS, TCP, timeout). May be transient.
	NetworkError ErrorKind = "network_error"
	// ParseError means the fetched content could not be parsed as HTML.
	ParseError ErrorKind = "parse_error"
)

// Outcome is the single result of one ingestion: exactly one of success,
// blocked or failure. Use the constructors rather than building it by hand.
type Outcome struct {
	Kind     Kind
	Listing  *Listing
	Platform platform.ID

	// StatusCode is the HTTP status that caused a blocked outcome.
	StatusCode int

	Reason ErrorKind
	Detail string
}

// Success wraps an extracted listing.
func Success(p platform.ID, listing Listing) Outcome {
	return Outcome{Kind: KindSuccess, Platform: p, Listing: &listing}
}

// Blocked reports that the platform refused to serve the page.
func Blocked(p platform.ID, statusCode int) Outcome {
	return Outcome{Kind: KindBlocked, Platform: p, StatusCode: statusCode}
}

// Failure reports a failed ingestion. p is empty when the platform is unknown.
func Failure(p platform.ID, reason ErrorKind, detail string) Outcome {
	return Outcome{Kind: KindFailure, Platform: p, Reason: reason, Detail: detail}
}

// Unsupported reports a URL that matched no known marketplace.
func Unsupported() Outcome {
	return Failure("", UnsupportedPlatform,
		fmt.Sprintf("unsupported platform: supported platforms are %s", platform.SupportedNames()))
}

// OK reports whether the outcome carries a listing.
func (o Outcome) OK() bool {
	return o.Kind == KindSuccess && o.Listing != nil
}

// Message returns a human-readable description suitable for showing to the user.
func (o Outcome) Message() string {
	switch o.Kind {
	case KindSuccess:
		return "listing parsed"
	case KindBlocked:
		return fmt.Sprintf("%s blocked automated access to this listing. Enter the property details manually.",
			o.Platform.Name())
	default:
		return o.Detail
	}
}

// Err returns nil for a successful outcome and an *IngestError otherwise.
func (o Outcome) Err() error {
	if o.Kind == KindSuccess {
		return nil
	}
	return &IngestError{
		Kind:     o.Kind,
		Reason:   o.Reason,
		Platform: o.Platform,
		Message:  o.Message(),
	}
}

// IngestError is the error form of a blocked or failed Outcome.
type IngestError struct {
	Kind     Kind
	Reason   ErrorKind
	Platform platform.ID
	Message  string
}

func (e *IngestError) Error() string {
	if e.Kind == KindBlocked {
		return fmt.Sprintf("blocked by %s: %s", e.Platform, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}
