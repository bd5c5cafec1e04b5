package extract

// OLX ad pages render through their design system; the data-ds-component
// and data-testid attributes outlive the hashed class names.
var olxRules = Rules{
	Title: chain([]Strategy{
		Text(`[data-testid="ad-title"]`),
		Text(`h1[data-ds-component="DS-Text"]`),
		Text(`#content h1`),
	}, titleFallback),
	Price: chain([]Strategy{
		PriceText(`[data-testid="ad-price-wrapper"] h2`),
		PriceText(`#price-box-container h2`),
		PriceText(`h2[data-ds-component="DS-Text"]`),
	}, priceFallback),
	Area: chain([]Strategy{
		Text(`[data-testid="ad-properties"] [data-testid="area"]`),
	}, areaFallback),
	Bedrooms: chain([]Strategy{
		Text(`[data-testid="ad-properties"] [data-testid="rooms"]`),
	}, bedroomsFallback),
	Address: chain([]Strategy{
		Text(`[data-testid="ad-location"]`),
		Text(`#location span`),
	}, addressFallback),
}
