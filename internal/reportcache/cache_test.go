package reportcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detective-ambiental/detective/internal/api"
)

func testReport(folio, title, category, status, email string) api.Report {
	var r api.Report
	r.Folio = folio
	r.PublicID = "pub-" + folio
	r.Title = title
	r.Date = "2025-03-01"
	r.Categories.Category = category
	r.Status.Status = status
	r.User.Email = email
	return r
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "reports.sqlite"))
	require.NoError(t, err)
	return cache
}

func TestCache_SyncAndList(t *testing.T) {
	cache := openTestCache(t)

	err := cache.SyncReports([]api.Report{
		testReport("F-002", "Derrame de aceite", "Contaminación", "Pendiente", "ana@uni.mx"),
		testReport("F-001", "Árbol caído", "Áreas verdes", "Resuelto", "luis@uni.mx"),
	})
	require.NoError(t, err)

	rows, err := cache.List()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by folio
	assert.Equal(t, "F-001", rows[0].Folio)
	assert.Equal(t, "Árbol caído", rows[0].Title)
	assert.Equal(t, "F-002", rows[1].Folio)
	assert.Equal(t, "ana@uni.mx", rows[1].Email)
}

func TestCache_SyncUpsertsByFolio(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.SyncReports([]api.Report{
		testReport("F-001", "Árbol caído", "Áreas verdes", "Pendiente", "luis@uni.mx"),
	}))
	require.NoError(t, cache.SyncReports([]api.Report{
		testReport("F-001", "Árbol caído", "Áreas verdes", "Resuelto", "luis@uni.mx"),
	}))

	rows, err := cache.List()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Resuelto", rows[0].Status)
}

func TestCache_SyncLocationsKeepsReportFields(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.SyncReports([]api.Report{
		testReport("F-001", "Árbol caído", "Áreas verdes", "Pendiente", "luis@uni.mx"),
	}))
	require.NoError(t, cache.SyncLocations([]api.MapReport{
		{Folio: "F-001", Title: "Árbol caído", Latitude: 19.4326, Longitude: -99.1332},
	}))

	rows, err := cache.List()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.InDelta(t, 19.4326, rows[0].Latitude, 0.0001)
	assert.InDelta(t, -99.1332, rows[0].Longitude, 0.0001)
	// Fields from the report sync survive the location upsert.
	assert.Equal(t, "Pendiente", rows[0].Status)
	assert.Equal(t, "luis@uni.mx", rows[0].Email)
}

func TestCache_EmptySyncIsNoop(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.SyncReports(nil))
	require.NoError(t, cache.SyncLocations(nil))

	rows, err := cache.List()
	require.NoError(t, err)
	assert.Empty(t, rows)
}
