package account

import (
	"errors"

	"townkeeper/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guard is the lightweight ownership gate consumed by the upgrade and wall
// packages through their collaborator interfaces.
type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// VerifyOwnership fails with NotFound when the account does not exist or is
// owned by someone else - existence is never leaked.
func (g *Guard) VerifyOwnership(tx *gorm.DB, accountID, userID uuid.UUID) error {
	var count int64
	if err := tx.Model(&Account{}).
		Where("id = ? AND user_id = ?", accountID, userID).
		Count(&count).Error; err != nil {
		return common.Internal("failed to verify account ownership", err)
	}
	if count == 0 {
		return common.NotFoundf("account not found")
	}
	return nil
}

// IncrementTotalUpgrades bumps the completed-upgrade counter by one.
func (g *Guard) IncrementTotalUpgrades(tx *gorm.DB, accountID uuid.UUID) error {
	result := tx.Model(&Account{}).
		Where("id = ?", accountID).
		UpdateColumn("total_upgrades", gorm.Expr("total_upgrades + 1"))
	if result.Error != nil {
		return common.Internal("failed to increment total upgrades", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NotFoundf("account not found")
	}
	return nil
}

// TownHallLevel resolves the town-hall level of an owned account.
func (g *Guard) TownHallLevel(tx *gorm.DB, accountID, userID uuid.UUID) (int, error) {
	var acc Account
	if err := tx.Select("town_hall_level").
		Where("id = ? AND user_id = ?", accountID, userID).
		First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, common.NotFoundf("account not found")
		}
		return 0, common.Internal("failed to get account", err)
	}
	return acc.TownHallLevel, nil
}
