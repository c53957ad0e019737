package domain

import "math"

// ServiceType is a catalog entry: a named class of service with a maximum
// payload weight. The catalog is seeded once and read-only thereafter.
type ServiceType struct {
	ID        string
	Name      string
	Typename  string
	MaxWeight float64
}

// EstimateFare returns the fare for carrying this tier over the given
// distance in kilometers, rounded to 2 decimals. Heavier tiers cost more
// per kilometer through the square-root scaling term.
func (t *ServiceType) EstimateFare(distanceKm float64) float64 {
	return math.Round(distanceKm*math.Sqrt(t.MaxWeight)*0.10*100) / 100
}

// StandardServiceTypes returns the three standard tiers the catalog is
// seeded with, ordered ascending by max weight.
func StandardServiceTypes() []ServiceType {
	return []ServiceType{
		{Name: "Estandar M", Typename: "Mandaditos", MaxWeight: 5.0},
		{Name: "XL", Typename: "Mandaditos XL", MaxWeight: 30.0},
		{Name: "XXL", Typename: "Mandaditos XXL", MaxWeight: 180.0},
	}
}
