package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// RowsPerDispenser is the fixed number of product rows of every dispenser.
const RowsPerDispenser = 4

// MaxRowCapacity bounds row counters, which are stored as 32-bit integers.
const MaxRowCapacity = math.MaxInt32

const earthRadiusKm = 6371.0

type GPSCoordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DistanceKm returns the great-circle distance between two points.
func (c GPSCoordinates) DistanceKm(other GPSCoordinates) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - c.Lat) * math.Pi / 180
	dLng := (other.Lng - c.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

type Dispenser struct {
	ID             uuid.UUID
	BLEBeaconID    string
	LocationName   string
	GPSCoordinates GPSCoordinates
	InstallDate    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Rows           []DispenserProduct
}

// DispenserProduct is one physical row of a dispenser. A row may be empty
// (Product == nil) until maintenance stocks it.
type DispenserProduct struct {
	ID               uuid.UUID
	DispenserID      uuid.UUID
	RowNumber        int
	Product          *Product
	CurrentInventory int
	MaxCapacity      int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func ValidRowNumber(n int) bool {
	return n >= 1 && n <= RowsPerDispenser
}

// InStock reports whether at least one unit can be dispensed.
func (r *DispenserProduct) InStock() bool {
	return r.CurrentInventory > 0
}
