package upgrade

import (
	"errors"
	"time"

	"townkeeper/internal/catalog"
	"townkeeper/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =============================================
// 1. SERVICE STRUCTURE
// =============================================

// AccountGuard is implemented by the account package and injected here to
// avoid an import cycle.
type AccountGuard interface {
	// VerifyOwnership fails with NotFound when the account does not exist or
	// belongs to another user.
	VerifyOwnership(tx *gorm.DB, accountID, userID uuid.UUID) error
	// IncrementTotalUpgrades bumps the per-account completed-upgrade counter.
	IncrementTotalUpgrades(tx *gorm.DB, accountID uuid.UUID) error
}

type Service struct {
	db       *gorm.DB
	accounts AccountGuard
}

func NewService(db *gorm.DB, accounts AccountGuard) *Service {
	return &Service{db: db, accounts: accounts}
}

// =============================================
// 2. LIFECYCLE OPERATIONS
// =============================================

// StartUpgrade starts (or instantly applies) an upgrade on an owned entity.
// The precondition check and the write are applied atomically: the UPDATE is
// guarded by the idle status, so two concurrent starts cannot both succeed.
func (s *Service) StartUpgrade(userID, entityID uuid.UUID, req *StartUpgradeRequest) (*StartResult, error) {
	now := time.Now()

	var result *StartResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entity, err := s.getOwnedEntity(tx, userID, entityID)
		if err != nil {
			return err
		}

		res, err := StartUpgrade(entity, req.DurationSeconds, req.Cost, now)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"current_level":        entity.CurrentLevel,
			"status":               entity.Status,
			"upgrade_start_time":   entity.UpgradeStartTime,
			"upgrade_end_time":     entity.UpgradeEndTime,
			"upgrade_cost":         entity.UpgradeCost,
			"upgrade_time_seconds": entity.UpgradeTimeSeconds,
		}
		guarded := tx.Model(&Entity{}).
			Where("id = ? AND status = ?", entity.ID, StatusIdle).
			Updates(updates)
		if guarded.Error != nil {
			return common.Internal("failed to persist upgrade start", guarded.Error)
		}
		if guarded.RowsAffected == 0 {
			return common.Conflictf("already upgrading")
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FinishUpgrade finalizes a running upgrade and bumps the owning account's
// total_upgrades counter in the same transaction.
func (s *Service) FinishUpgrade(userID, entityID uuid.UUID) (*Entity, error) {
	var finished *Entity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entity, err := s.getOwnedEntity(tx, userID, entityID)
		if err != nil {
			return err
		}

		if err := FinishUpgrade(entity); err != nil {
			return err
		}

		guarded := tx.Model(&Entity{}).
			Where("id = ? AND status = ?", entity.ID, StatusUpgrading).
			Updates(map[string]interface{}{
				"current_level":        entity.CurrentLevel,
				"status":               StatusIdle,
				"upgrade_start_time":   nil,
				"upgrade_end_time":     nil,
				"upgrade_cost":         0,
				"upgrade_time_seconds": 0,
			})
		if guarded.Error != nil {
			return common.Internal("failed to persist upgrade finish", guarded.Error)
		}
		if guarded.RowsAffected == 0 {
			return common.Conflictf("not currently upgrading")
		}

		if err := s.accounts.IncrementTotalUpgrades(tx, entity.AccountID); err != nil {
			return err
		}

		finished = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return finished, nil
}

// CancelUpgrade aborts a running upgrade without touching the level or the
// account counter.
func (s *Service) CancelUpgrade(userID, entityID uuid.UUID) (*Entity, error) {
	var cancelled *Entity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entity, err := s.getOwnedEntity(tx, userID, entityID)
		if err != nil {
			return err
		}

		if err := CancelUpgrade(entity); err != nil {
			return err
		}

		guarded := tx.Model(&Entity{}).
			Where("id = ? AND status = ?", entity.ID, StatusUpgrading).
			Updates(map[string]interface{}{
				"status":               StatusIdle,
				"upgrade_start_time":   nil,
				"upgrade_end_time":     nil,
				"upgrade_cost":         0,
				"upgrade_time_seconds": 0,
			})
		if guarded.Error != nil {
			return common.Internal("failed to persist upgrade cancel", guarded.Error)
		}
		if guarded.RowsAffected == 0 {
			return common.Conflictf("not currently upgrading")
		}

		cancelled = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// =============================================
// 3. READ OPERATIONS
// =============================================

// GetUpgradeStatus reports derived progress at the given instant. Completion
// is evaluated lazily here; nothing fires when a timer elapses.
func (s *Service) GetUpgradeStatus(userID, entityID uuid.UUID, now time.Time) (*Progress, error) {
	entity, err := s.getOwnedEntity(s.db, userID, entityID)
	if err != nil {
		return nil, err
	}
	return ComputeProgress(entity, now), nil
}

// ValidateUpgrade returns the start-eligibility view of an entity.
func (s *Service) ValidateUpgrade(userID, entityID uuid.UUID) (*Eligibility, error) {
	entity, err := s.getOwnedEntity(s.db, userID, entityID)
	if err != nil {
		return nil, err
	}
	return ValidateUpgrade(entity), nil
}

// GetEntity returns one owned entity.
func (s *Service) GetEntity(userID, entityID uuid.UUID) (*Entity, error) {
	return s.getOwnedEntity(s.db, userID, entityID)
}

// =============================================
// 4. ADMINISTRATIVE OPERATIONS
// =============================================

// SetLevel is the direct level override. Only idle entities can be adjusted.
func (s *Service) SetLevel(userID, entityID uuid.UUID, level int) (*Entity, error) {
	var updated *Entity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entity, err := s.getOwnedEntity(tx, userID, entityID)
		if err != nil {
			return err
		}

		if level < 0 || level > entity.MaxLevel {
			return common.Validationf("level must be between 0 and %d", entity.MaxLevel)
		}

		guarded := tx.Model(&Entity{}).
			Where("id = ? AND status = ?", entity.ID, StatusIdle).
			Update("current_level", level)
		if guarded.Error != nil {
			return common.Internal("failed to set level", guarded.Error)
		}
		if guarded.RowsAffected == 0 {
			return common.Conflictf("cannot set level while upgrading")
		}

		entity.CurrentLevel = level
		updated = entity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteEntity removes a spell from an account. Other categories only go away
// with the account itself.
func (s *Service) DeleteEntity(userID, entityID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		entity, err := s.getOwnedEntity(tx, userID, entityID)
		if err != nil {
			return err
		}

		if entity.Category != catalog.CategorySpell {
			return common.Validationf("only spells can be deleted individually")
		}

		if err := tx.Delete(&Entity{}, "id = ?", entity.ID).Error; err != nil {
			return common.Internal("failed to delete spell", err)
		}
		return nil
	})
}

// =============================================
// 5. HELPER FUNCTIONS
// =============================================

// getOwnedEntity loads an entity and enforces ownership. Foreign or missing
// records both surface as NotFound so existence is not leaked.
func (s *Service) getOwnedEntity(tx *gorm.DB, userID, entityID uuid.UUID) (*Entity, error) {
	var entity Entity
	if err := tx.Where("id = ?", entityID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("entity not found")
		}
		return nil, common.Internal("failed to get entity", err)
	}

	if err := s.accounts.VerifyOwnership(tx, entity.AccountID, userID); err != nil {
		if common.IsKind(err, common.KindNotFound) {
			return nil, common.NotFoundf("entity not found")
		}
		return nil, err
	}

	return &entity, nil
}
