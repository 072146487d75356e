package geo

import (
	"fmt"
	"math"

	"github.com/darshak-ai/restaurant-platform/pkg/types"
)

// earthRadiusMiles is the mean Earth radius used for storefront distances.
const earthRadiusMiles = 3959.0

// DistanceMiles returns the great-circle distance between two points.
func DistanceMiles(from, to types.Coordinates) float64 {
	dLat := radians(to.Latitude - from.Latitude)
	dLon := radians(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(from.Latitude))*math.Cos(radians(to.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// FormatMiles renders a distance the way the locations page displays it.
func FormatMiles(miles float64) string {
	return fmt.Sprintf("%.1f mi", miles)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
