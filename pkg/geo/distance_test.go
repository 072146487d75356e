package geo

import (
	"math"
	"testing"

	"github.com/darshak-ai/restaurant-platform/pkg/types"
)

func TestDistanceMilesManhattanToBrooklyn(t *testing.T) {
	t.Parallel()

	lowerManhattan := types.Coordinates{Latitude: 40.7128, Longitude: -74.0060}
	eastWilliamsburg := types.Coordinates{Latitude: 40.7306, Longitude: -73.9352}

	got := DistanceMiles(lowerManhattan, eastWilliamsburg)
	if math.Abs(got-4.3) > 0.1 {
		t.Fatalf("expected roughly 4.3 miles, got %.4f", got)
	}
	if formatted := FormatMiles(got); formatted != "4.3 mi" {
		t.Fatalf("unexpected display value %q", formatted)
	}
}

func TestDistanceMilesZero(t *testing.T) {
	t.Parallel()

	p := types.Coordinates{Latitude: 35.6762, Longitude: 139.6503}
	if got := DistanceMiles(p, p); got != 0 {
		t.Fatalf("expected zero distance, got %f", got)
	}
}

func TestDistanceMilesSymmetric(t *testing.T) {
	t.Parallel()

	a := types.Coordinates{Latitude: 34.0522, Longitude: -118.2437}
	b := types.Coordinates{Latitude: 36.1699, Longitude: -115.1398}

	forward := DistanceMiles(a, b)
	back := DistanceMiles(b, a)
	if math.Abs(forward-back) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", forward, back)
	}
	if forward < 200 || forward > 250 {
		t.Fatalf("LA to Las Vegas should be in the low 200s of miles, got %f", forward)
	}
}
