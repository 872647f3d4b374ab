package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"townkeeper/internal/catalog"
	"townkeeper/internal/common"
	"townkeeper/internal/wall"
)

// =============================================
// 1. PROFILE SNAPSHOT
// =============================================

// ProfileSnapshot is the seed data fetched from the external game-data
// provider. It is only ever used to initialize a new account; the tracker
// never writes back.
type ProfileSnapshot struct {
	Tag           string          `json:"tag"`
	Name          string          `json:"name"`
	TownHallLevel int             `json:"town_hall_level"`
	Entities      []ProfileEntity `json:"entities"`
	Walls         wall.WallLevels `json:"walls,omitempty"`
	FetchedAt     time.Time       `json:"fetched_at"`
}

// ProfileEntity is one seeded level value from the provider.
type ProfileEntity struct {
	Name     string           `json:"name"`
	Category catalog.Category `json:"category"`
	Level    int              `json:"level"`
}

// =============================================
// 2. PROVIDER BOUNDARY
// =============================================

// ProfileProvider fetches a live player profile. The game-data service is an
// external collaborator; everything behind this interface is out of the
// tracker's hands.
type ProfileProvider interface {
	FetchProfile(ctx context.Context, tag string) (*ProfileSnapshot, error)
}

// HTTPProvider talks to the provider's REST API.
type HTTPProvider struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPProvider(baseURL, token string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchProfile loads a player profile by tag.
func (p *HTTPProvider) FetchProfile(ctx context.Context, tag string) (*ProfileSnapshot, error) {
	endpoint := fmt.Sprintf("%s/players/%s", p.baseURL, url.PathEscape(tag))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, common.Internal("failed to build provider request", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, common.Internal("provider request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, common.NotFoundf("player %q not found", tag)
	case resp.StatusCode != http.StatusOK:
		return nil, common.Internalf("provider returned status %d", resp.StatusCode)
	}

	var snapshot ProfileSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, common.Internal("failed to decode provider response", err)
	}
	snapshot.Tag = tag
	snapshot.FetchedAt = time.Now()

	return &snapshot, nil
}
