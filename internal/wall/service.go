package wall

import (
	"errors"

	"townkeeper/internal/catalog"
	"townkeeper/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =============================================
// 1. SERVICE STRUCTURE
// =============================================

// AccountSource is injected by the account package to avoid an import
// cycle.
type AccountSource interface {
	// TownHallLevel resolves the town-hall level of an owned account. Missing
	// or foreign accounts fail with NotFound.
	TownHallLevel(tx *gorm.DB, accountID, userID uuid.UUID) (int, error)
}

type Service struct {
	db       *gorm.DB
	accounts AccountSource
}

func NewService(db *gorm.DB, accounts AccountSource) *Service {
	return &Service{db: db, accounts: accounts}
}

// NewGroup builds the initial per-account ledger from the town-hall wall
// allowance. Returns nil when the town hall has no wall allowance yet.
func NewGroup(accountID uuid.UUID, townHallLevel int) *Group {
	allowance := catalog.WallAllowanceFor(townHallLevel)
	if allowance.Count == 0 {
		return nil
	}

	group := &Group{
		AccountID:    accountID,
		MaxLevel:     allowance.MaxLevel,
		TotalAllowed: allowance.Count,
		Levels:       WallLevels{{Level: startLevel, Count: allowance.Count}},
	}
	group.ID = uuid.New()
	return group
}

// NewGroupFromBuckets builds a ledger seeded from imported bucket data,
// clamped to the town-hall allowance ceiling.
func NewGroupFromBuckets(accountID uuid.UUID, townHallLevel int, buckets WallLevels) *Group {
	group := NewGroup(accountID, townHallLevel)
	if group == nil {
		return nil
	}

	seeded := WallLevels{}
	remaining := group.TotalAllowed
	for _, b := range buckets {
		if b.Count <= 0 || b.Level < 0 {
			continue
		}
		if b.Level > group.MaxLevel {
			b.Level = group.MaxLevel
		}
		if b.Count > remaining {
			b.Count = remaining
		}
		if b.Count > 0 {
			seeded = append(seeded, b)
			remaining -= b.Count
		}
	}
	if len(seeded) > 0 {
		group.Levels = seeded
	}
	return group
}

// =============================================
// 2. LEDGER OPERATIONS
// =============================================

// Upgrade moves count wall pieces from one level bucket to another. The
// town-hall total guard runs after the tentative move is computed in memory;
// nothing persists when it rejects.
func (s *Service) Upgrade(userID, accountID uuid.UUID, req *UpgradeRequest) (*UpgradeResult, error) {
	var result *UpgradeResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		group, err := s.getOrCreateGroup(tx, userID, accountID)
		if err != nil {
			return err
		}

		if req.FromLevel < 0 {
			return common.Validationf("from_level must not be negative")
		}
		if req.ToLevel <= req.FromLevel {
			return common.Validationf("to_level must be greater than from_level")
		}
		if req.Count <= 0 {
			return common.Validationf("count must be a positive integer")
		}
		if req.ToLevel > group.MaxLevel {
			return common.Validationf("exceeds wall max level (%d)", group.MaxLevel)
		}
		if group.Levels.CountAt(req.FromLevel) < req.Count {
			return common.Validationf("not enough walls at that level")
		}

		// Tentative move first, allowance guard after - the rejection is a
		// post-condition check on the computed ledger.
		moved := group.Levels.Move(req.FromLevel, req.ToLevel, req.Count)
		if moved.Total() > group.TotalAllowed {
			return common.Validationf("exceeds Town Hall limit (%d)", group.TotalAllowed)
		}

		group.Levels = moved
		if err := tx.Model(&Group{}).Where("id = ?", group.ID).Update("levels", moved).Error; err != nil {
			return common.Internal("failed to persist wall upgrade", err)
		}

		result = &UpgradeResult{Group: group, TotalAllowed: group.TotalAllowed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetStats returns the wall roll-up, lazily provisioning the ledger on first
// read.
func (s *Service) GetStats(userID, accountID uuid.UUID) (*Stats, error) {
	var stats *Stats
	err := s.db.Transaction(func(tx *gorm.DB) error {
		group, err := s.getOrCreateGroup(tx, userID, accountID)
		if err != nil {
			return err
		}

		stats = &Stats{
			Total:        group.Levels.Total(),
			Maxed:        group.Levels.MaxedCount(group.MaxLevel),
			TotalAllowed: group.TotalAllowed,
			MaxLevel:     group.MaxLevel,
			ByLevel:      group.Levels,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GetGroup returns the raw ledger, lazily provisioning it on first read.
func (s *Service) GetGroup(userID, accountID uuid.UUID) (*Group, error) {
	var group *Group
	err := s.db.Transaction(func(tx *gorm.DB) error {
		g, err := s.getOrCreateGroup(tx, userID, accountID)
		if err != nil {
			return err
		}
		group = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// =============================================
// 3. HELPER FUNCTIONS
// =============================================

// getOrCreateGroup loads the account's ledger, deriving and persisting one
// from the town-hall configuration when it does not exist yet. Reads carry
// this create-on-read side effect.
func (s *Service) getOrCreateGroup(tx *gorm.DB, userID, accountID uuid.UUID) (*Group, error) {
	townHallLevel, err := s.accounts.TownHallLevel(tx, accountID, userID)
	if err != nil {
		return nil, err
	}

	var group Group
	if err := tx.Where("account_id = ?", accountID).First(&group).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.Internal("failed to get wall group", err)
		}

		created := NewGroup(accountID, townHallLevel)
		if created == nil {
			return nil, common.Validationf("town hall %d has no wall allowance", townHallLevel)
		}
		if err := tx.Create(created).Error; err != nil {
			return nil, common.Internal("failed to create wall group", err)
		}
		return created, nil
	}

	return &group, nil
}
