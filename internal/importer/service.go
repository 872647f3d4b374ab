package importer

import (
	"context"
	"log"
	"strings"

	"townkeeper/internal/account"
	"townkeeper/internal/common"

	"github.com/google/uuid"
)

// =============================================
// 1. SERVICE STRUCTURE
// =============================================

type Service struct {
	provider ProfileProvider
	cache    *PendingCache
	accounts *account.Service
}

func NewService(provider ProfileProvider, cache *PendingCache, accounts *account.Service) *Service {
	return &Service{provider: provider, cache: cache, accounts: accounts}
}

// SearchResult hands the caller a commit key plus the snapshot to review.
type SearchResult struct {
	Key       string           `json:"key"`
	ExpiresIn int64            `json:"expires_in"`
	Snapshot  *ProfileSnapshot `json:"snapshot"`
}

// =============================================
// 2. SEARCH & COMMIT
// =============================================

// Search fetches a live profile and parks it in the pending cache. Nothing
// is persisted until the user commits the key.
func (s *Service) Search(ctx context.Context, tag string) (*SearchResult, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, common.Validationf("player tag is required")
	}

	snapshot, err := s.provider.FetchProfile(ctx, tag)
	if err != nil {
		return nil, err
	}

	key := uuid.New().String()
	if err := s.cache.Set(ctx, key, snapshot); err != nil {
		return nil, err
	}

	log.Printf("🔎 Cached profile %q under pending key %s", tag, key)
	return &SearchResult{
		Key:       key,
		ExpiresIn: int64(s.cache.TTL().Seconds()),
		Snapshot:  snapshot,
	}, nil
}

// Commit turns a pending snapshot into a provisioned account, then drops the
// cache entry. Expired keys fail with NotFound.
func (s *Service) Commit(ctx context.Context, userID uuid.UUID, key string) (*account.ProvisionResult, error) {
	snapshot, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	result, err := s.accounts.Import(userID, snapshotToSpec(snapshot))
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		// The account exists; a stale cache entry just expires on its own.
		log.Printf("⚠️ Failed to drop pending import %s: %v", key, err)
	}

	return result, nil
}

// snapshotToSpec maps the provider payload into the account import shape.
func snapshotToSpec(snapshot *ProfileSnapshot) *account.ImportSpec {
	spec := &account.ImportSpec{
		Name:          snapshot.Name,
		Tag:           snapshot.Tag,
		TownHallLevel: snapshot.TownHallLevel,
		Walls:         snapshot.Walls,
	}
	for _, e := range snapshot.Entities {
		spec.Entities = append(spec.Entities, account.ImportEntity{
			Name:     e.Name,
			Category: e.Category,
			Level:    e.Level,
		})
	}
	return spec
}
