package types

// Coordinates is a latitude/longitude pair reported by the browser.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
