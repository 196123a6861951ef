package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByFit_BandBeforeCapacity(t *testing.T) {
	venues := []Venue{
		{ID: 1, Name: "Auditorium", Capacity: 500, Active: true},
		{ID: 2, Name: "Seminar Hall", Capacity: 120, Active: true},
		{ID: 3, Name: "Room 101", Capacity: 100, Active: true},
		{ID: 4, Name: "Lab", Capacity: 119, Active: true},
		{ID: 5, Name: "Twin", Capacity: 100, Active: true},
	}

	SortByFit(venues, 100)

	var ids []uint
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []uint{3, 5, 4, 2, 1}, ids)
}

func TestSortByFit_BandEdge(t *testing.T) {
	venues := []Venue{
		{ID: 1, Capacity: 121},
		{ID: 2, Capacity: 120},
	}

	SortByFit(venues, 100)

	assert.Equal(t, uint(2), venues[0].ID, "required+20 is still inside the band")
}

func TestVenueFits(t *testing.T) {
	v := Venue{Capacity: 50, Active: true}
	assert.True(t, v.Fits(50))
	assert.False(t, v.Fits(51))

	v.Active = false
	assert.False(t, v.Fits(10))
}
