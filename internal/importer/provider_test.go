package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"townkeeper/internal/catalog"
	"townkeeper/internal/common"
	"townkeeper/internal/wall"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProvider_FetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/%23ABC123", r.URL.EscapedPath())
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Chief",
			"town_hall_level": 9,
			"entities": [{"name": "P.E.K.K.A", "category": "troop", "level": 4}],
			"walls": [{"level": 5, "count": 100}]
		}`))
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, "test-token")

	snapshot, err := provider.FetchProfile(context.Background(), "#ABC123")
	require.NoError(t, err)

	assert.Equal(t, "#ABC123", snapshot.Tag, "tag comes from the request, not the payload")
	assert.Equal(t, "Chief", snapshot.Name)
	assert.Equal(t, 9, snapshot.TownHallLevel)
	require.Len(t, snapshot.Entities, 1)
	assert.Equal(t, catalog.CategoryTroop, snapshot.Entities[0].Category)
	assert.Equal(t, wall.WallLevels{{Level: 5, Count: 100}}, snapshot.Walls)
	assert.False(t, snapshot.FetchedAt.IsZero())
}

func TestHTTPProvider_PlayerNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, "test-token")

	_, err := provider.FetchProfile(context.Background(), "#MISSING")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindNotFound))
}

func TestHTTPProvider_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, "test-token")

	_, err := provider.FetchProfile(context.Background(), "#ABC123")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindInternal))
}

func TestSnapshotToSpec(t *testing.T) {
	snapshot := &ProfileSnapshot{
		Tag:           "#ABC123",
		Name:          "Chief",
		TownHallLevel: 11,
		Entities: []ProfileEntity{
			{Name: "Cannon", Category: catalog.CategoryBuilding, Level: 7},
			{Name: "Archer Queen", Category: catalog.CategoryHero, Level: 30},
		},
		Walls: wall.WallLevels{{Level: 9, Count: 50}},
	}

	spec := snapshotToSpec(snapshot)

	assert.Equal(t, "Chief", spec.Name)
	assert.Equal(t, "#ABC123", spec.Tag)
	assert.Equal(t, 11, spec.TownHallLevel)
	require.Len(t, spec.Entities, 2)
	assert.Equal(t, "Cannon", spec.Entities[0].Name)
	assert.Equal(t, 30, spec.Entities[1].Level)
	assert.Equal(t, snapshot.Walls, spec.Walls)
}
