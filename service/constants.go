package service

const (
	// Weight band lower bounds, in kg. Anything under GlassMinWeight is Plastic.
	GlassMinWeight = 2.0
	WoodMinWeight  = 5.0
	MetalMinWeight = 15.0

	cacheKeyPrefix = "classify:"
)
