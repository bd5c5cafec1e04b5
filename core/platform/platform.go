// Package platform identifies which marketplace a listing URL belongs to.
// Classification is raw substring containment against each platform's
// domain fragment, tested in a fixed priority order.
package platform

import (
	"errors"
	"strings"
)

// ID identifies a supported marketplace.
type ID string

const (
	OLX         ID = "olx"
	QuintoAndar ID = "quintoandar"
	VivaReal    ID = "vivareal"
	Loft        ID = "loft"
)

// ErrUnsupported is returned by Classify when no domain fragment matches.
var ErrUnsupported = errors.New("unsupported platform")

type descriptor struct {
	id       ID
	fragment string
	name     string
}

// registry is ordered by classification priority.
var registry = []descriptor{
	{id: OLX, fragment: "olx.com.br", name: "OLX"},
	{id: QuintoAndar, fragment: "quintoandar.com.br", name: "QuintoAndar"},
	{id: VivaReal, fragment: "vivareal.com.br", name: "VivaReal"},
	{id: Loft, fragment: "loft.com.br", name: "Loft"},
}

// Classify maps a URL to a platform. The URL is not parsed or normalized:
// "OLX.COM.BR" does not match, "x?ref=olx.com.br" does.
func Classify(rawURL string) (ID, error) {
	for _, d := range registry {
		if strings.Contains(rawURL, d.fragment) {
			return d.id, nil
		}
	}
	return "", ErrUnsupported
}

// All returns the supported platforms in classification order.
func All() []ID {
	ids := make([]ID, 0, len(registry))
	for _, d := range registry {
		ids = append(ids, d.id)
	}
	return ids
}

// SupportedNames returns the display names of all platforms, comma separated.
func SupportedNames() string {
	ids := All()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, id.Name())
	}
	return strings.Join(names, ", ")
}

// Name returns the display name, or the raw ID for unknown values.
func (id ID) Name() string {
	for _, d := range registry {
		if d.id == id {
			return d.name
		}
	}
	return string(id)
}

// DefaultTitle is the label used when a page has no title element.
func (id ID) DefaultTitle() string {
	return "Imóvel " + id.Name()
}

func (id ID) String() string {
	return string(id)
}
