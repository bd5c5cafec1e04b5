package extract

var quintoAndarRules = Rules{
	Title: chain([]Strategy{
		Text(`[data-testid="house-main-info"] h1`),
		Text(`h1[data-testid="house-title"]`),
	}, titleFallback),
	Price: chain([]Strategy{
		PriceText(`[data-testid="house-sale-price"]`),
		PriceText(`[data-testid="price-info-value"]`),
		PriceText(`[data-testid="house-price"]`),
	}, priceFallback),
	Area: chain([]Strategy{
		Text(`[data-testid="house-area"]`),
		Text(`[data-testid="info-area"]`),
	}, areaFallback),
	Bedrooms: chain([]Strategy{
		Text(`[data-testid="house-bedrooms"]`),
		Text(`[data-testid="info-bedrooms"]`),
	}, bedroomsFallback),
	Address: chain([]Strategy{
		Text(`[data-testid="house-address"]`),
		Text(`[data-testid="house-main-info"] h2`),
	}, addressFallback),
}
