package extract

// vivaRealRules also serves Loft, whose listing pages follow the same
// markup conventions.
var vivaRealRules = Rules{
	Title: chain([]Strategy{
		Text(`h1.title__title`),
		Text(`[data-testid="listing-title"]`),
		Text(`.property-title`),
	}, titleFallback),
	Price: chain([]Strategy{
		PriceText(`.price__price-info`),
		PriceText(`[data-testid="price-info-value"]`),
		PriceText(`h3.price__price-info`),
	}, priceFallback),
	Area: chain([]Strategy{
		Text(`.features__item--area`),
		Text(`[itemprop="floorSize"]`),
		Text(`[data-testid="amenity-area"]`),
	}, areaFallback),
	Bedrooms: chain([]Strategy{
		Text(`.features__item--bedroom`),
		Text(`[itemprop="numberOfRooms"]`),
		Text(`[data-testid="amenity-bedrooms"]`),
	}, bedroomsFallback),
	Address: chain([]Strategy{
		Text(`.title__address`),
		Text(`[data-testid="address-info-value"]`),
		Text(`.address-info-value`),
	}, addressFallback),
}
