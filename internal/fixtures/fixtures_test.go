package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)
	require.Len(t, d.Restaurants, 10)

	first := d.Restaurants[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Mission Chinese Food", first.Name)
	assert.Equal(t, "171 E Broadway, New York, NY 10002", first.Address)
	require.Len(t, first.OperatingHours, 7)
	assert.Equal(t, "Monday", first.OperatingHours[0].Day)
	assert.Equal(t, "Sunday", first.OperatingHours[6].Day)
}

func TestLoadReviewsReferenceKnownRestaurants(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, d.Reviews)

	ids := make(map[int64]bool)
	for _, r := range d.Restaurants {
		ids[r.ID] = true
	}
	for _, r := range d.Reviews {
		assert.True(t, ids[r.RestaurantID], "review %q references unknown restaurant %d", r.Name, r.RestaurantID)
		assert.False(t, r.CreatedAt.IsZero())
		assert.False(t, r.UpdatedAt.Before(r.CreatedAt))
	}
}
