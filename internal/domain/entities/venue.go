package entities

import (
	"sort"
	"time"
)

// BestFitBand is the capacity slack within which a venue counts as a close fit.
const BestFitBand = 20

// Venue is a bookable hall.
type Venue struct {
	ID          uint
	Name        string
	Capacity    int
	Active      bool
	Location    string
	Facilities  string // comma separated, e.g. "Projector,AC"
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fits reports whether the venue is active and large enough.
func (v *Venue) Fits(required int) bool {
	return v.Active && v.Capacity >= required
}

func fitBand(capacity, required int) int {
	if capacity <= required+BestFitBand {
		return 0
	}
	return 1
}

// SortByFit orders venues by (band, capacity, id) for the given requirement.
func SortByFit(venues []Venue, required int) {
	sort.SliceStable(venues, func(i, j int) bool {
		bi, bj := fitBand(venues[i].Capacity, required), fitBand(venues[j].Capacity, required)
		if bi != bj {
			return bi < bj
		}
		if venues[i].Capacity != venues[j].Capacity {
			return venues[i].Capacity < venues[j].Capacity
		}
		return venues[i].ID < venues[j].ID
	})
}
