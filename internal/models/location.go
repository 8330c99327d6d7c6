package models

import "math"

// CampusLocation is an entry of the fixed campus catalog the UI offers for
// report pickers and supervisor assignment.
type CampusLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CampusLocations returns the fixed campus catalog.
func CampusLocations() []CampusLocation {
	return []CampusLocation{
		{Name: "Snell Library", Latitude: 42.3387, Longitude: -71.0882},
		{Name: "Curry Student Center", Latitude: 42.3376, Longitude: -71.0875},
		{Name: "ISEC", Latitude: 42.3380, Longitude: -71.0901},
		{Name: "Marino Center", Latitude: 42.3408, Longitude: -71.0903},
		{Name: "Dodge Hall", Latitude: 42.3398, Longitude: -71.0887},
		{Name: "Ryder Hall", Latitude: 42.3366, Longitude: -71.0912},
		{Name: "Egan Research Center", Latitude: 42.3401, Longitude: -71.0867},
		{Name: "Krentzman Quadrangle", Latitude: 42.3381, Longitude: -71.0895},
	}
}

// NearestCampusLocation returns the catalog entry closest to the given
// coordinate pair. Used to derive a display name when a report carries only
// coordinates. Squared equirectangular distance is plenty at campus scale.
func NearestCampusLocation(longitude, latitude float64) CampusLocation {
	locations := CampusLocations()
	best := locations[0]
	bestDist := math.MaxFloat64
	for _, loc := range locations {
		dLat := loc.Latitude - latitude
		dLng := (loc.Longitude - longitude) * math.Cos(latitude*math.Pi/180)
		dist := dLat*dLat + dLng*dLng
		if dist < bestDist {
			bestDist = dist
			best = loc
		}
	}
	return best
}
