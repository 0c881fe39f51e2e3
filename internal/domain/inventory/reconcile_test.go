package inventory_test

import (
	"testing"
	"time"

	"github.com/jhoicas/autoservicio-api/internal/domain/entity"
	"github.com/jhoicas/autoservicio-api/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifference(t *testing.T) {
	assert.Equal(t, -3, inventory.Difference(7, 10))
	assert.Equal(t, 0, inventory.Difference(4, 4))
	assert.Equal(t, 5, inventory.Difference(5, 0))
}

func TestLatestByProduct_EligeElConteoMasReciente(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	counts := []*entity.InventoryCount{
		{ID: "a1", ProductID: "p1", CountedAt: base},
		{ID: "a2", ProductID: "p1", CountedAt: base.Add(2 * time.Hour)},
		{ID: "a3", ProductID: "p1", CountedAt: base.Add(time.Hour)},
		{ID: "b1", ProductID: "p2", CountedAt: base},
	}

	latest := inventory.LatestByProduct(counts)

	require.Len(t, latest, 2)
	assert.Equal(t, "a2", latest["p1"].ID)
	assert.Equal(t, "b1", latest["p2"].ID)
}
