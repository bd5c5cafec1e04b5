// Package extract implements the per-platform Extractors.
// Every field is read through an ordered list of strategies: stable
// platform selectors first, generic selectors next and a whole-document
// regex last. When all of them miss, the field's default is used, so
// extraction never fails.
package extract

import (
	"github.com/Fichusgg/casa-score-br/core"
	"github.com/Fichusgg/casa-score-br/core/parse"
	"github.com/Fichusgg/casa-score-br/core/platform"
)

// Rules lists the strategies tried for each field, in order.
type Rules struct {
	Title    []Strategy
	Price    []Strategy
	Area     []Strategy
	Bedrooms []Strategy
	Address  []Strategy
}

// PriceText reads a price from element text. Visible text must carry the
// currency marker; bare numbers are only trusted from structured attributes.
func PriceText(selector string) Strategy {
	return Containing(currencyMarker, Text(selector))
}

// Shared fallbacks appended after the platform-specific strategies.
var (
	titleFallback = []Strategy{
		Text("h1"),
		Attr(`meta[property="og:title"]`, "content"),
	}
	priceFallback = []Strategy{
		Attr(`meta[property="product:price:amount"]`, "content"),
		Attr(`[itemprop="price"]`, "content"),
		Pattern(pricePattern),
	}
	areaFallback = []Strategy{
		Pattern(areaPattern),
	}
	bedroomsFallback = []Strategy{
		Pattern(bedroomsPattern),
	}
	addressFallback = []Strategy{
		Text("address"),
		TextSegment(isAddressSegment),
	}
)

// Option customizes an Extractor.
type Option func(*Extractor)

// WithDefaultEstado overrides the two-letter state used for every address.
func WithDefaultEstado(uf string) Option {
	return func(e *Extractor) {
		if uf != "" {
			e.estado = uf
		}
	}
}

// Extractor applies one platform's Rules to a document.
type Extractor struct {
	rules        Rules
	defaultTitle string
	estado       string
}

// New creates an Extractor. defaultTitle is used when no title strategy matches.
func New(rules Rules, defaultTitle string, opts ...Option) *Extractor {
	e := &Extractor{rules: rules, defaultTitle: defaultTitle, estado: DefaultEstado}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads a Listing from doc. It is a pure function of doc.
func (e *Extractor) Extract(doc *parse.Document) core.Listing {
	listing := core.Listing{
		Title:  e.defaultTitle,
		AreaM2: DefaultAreaM2,
	}

	if title, ok := resolve(doc, e.rules.Title, parseTitle); ok {
		listing.Title = title
	}
	if price, ok := resolve(doc, e.rules.Price, parsePrice); ok {
		listing.Price = price
	}
	if area, ok := resolve(doc, e.rules.Area, parseArea); ok {
		listing.AreaM2 = area
	}
	if bedrooms, ok := resolve(doc, e.rules.Bedrooms, parseBedrooms); ok {
		listing.Bedrooms = &bedrooms
	}

	raw, _ := resolve(doc, e.rules.Address, nonEmpty)
	listing.Address = splitAddress(raw, e.estado)

	return listing
}

// rulesFor maps each platform to its rules. Loft has no markup of its own
// and shares VivaReal's.
var rulesFor = map[platform.ID]Rules{
	platform.OLX:         olxRules,
	platform.QuintoAndar: quintoAndarRules,
	platform.VivaReal:    vivaRealRules,
	platform.Loft:        vivaRealRules,
}

// For returns the Extractor for a platform.
func For(id platform.ID, opts ...Option) (*Extractor, bool) {
	rules, ok := rulesFor[id]
	if !ok {
		return nil, false
	}
	return New(rules, id.DefaultTitle(), opts...), true
}

func chain(lists ...[]Strategy) []Strategy {
	var out []Strategy
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
