package account

import (
	"townkeeper/internal/catalog"
	"townkeeper/internal/common"
	"townkeeper/internal/upgrade"
	"townkeeper/internal/wall"

	"github.com/google/uuid"
)

// =============================================
// 1. ACCOUNT MODEL
// =============================================

// Account is one tracked game profile. A user can register several; each
// account exclusively owns its entities and wall group for its lifetime.
type Account struct {
	common.BaseModel
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null"`
	Tag           *string   `json:"tag,omitempty" gorm:"type:varchar(20);index"`
	TownHallLevel int       `json:"town_hall_level" gorm:"not null;check:town_hall_level >= 1"`
	TotalUpgrades int       `json:"total_upgrades" gorm:"not null;default:0"`
}

func (Account) TableName() string {
	return "accounts"
}

// =============================================
// 2. REQUEST / RESULT SHAPES
// =============================================

// CreateAccountRequest provisions a fresh account at a town-hall level.
type CreateAccountRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	TownHallLevel int    `json:"town_hall_level" binding:"required,min=1"`
}

// ProvisionResult is the freshly created account with its starter set.
type ProvisionResult struct {
	Account   *Account         `json:"account"`
	Entities  []upgrade.Entity `json:"entities"`
	WallGroup *wall.Group      `json:"wall_group,omitempty"`
}

// ImportSpec seeds an account from an external profile snapshot. The
// importer package maps provider payloads into this shape.
type ImportSpec struct {
	Name          string
	Tag           string
	TownHallLevel int
	Entities      []ImportEntity
	Walls         wall.WallLevels
}

// ImportEntity is one seeded level value. Buildings with several instances
// appear once per instance; values are consumed in order.
type ImportEntity struct {
	Name     string
	Category catalog.Category
	Level    int
}

// =============================================
// 3. STATS SHAPES
// =============================================

// CategoryTotals is the per-category roll-up counter set.
type CategoryTotals struct {
	Total     int `json:"total"`
	Maxed     int `json:"maxed"`
	Upgrading int `json:"upgrading"`
}

// CategoryProgress is the per-category level-sum completion view. Percentage
// is floored, never rounded up.
type CategoryProgress struct {
	Current    int `json:"current"`
	Max        int `json:"max"`
	Percentage int `json:"percentage"`
}

// AccountStats is the full aggregate view of one account.
type AccountStats struct {
	Account      *Account                              `json:"account"`
	PerCategory  map[catalog.Category]CategoryTotals   `json:"per_category"`
	Progress     map[catalog.Category]CategoryProgress `json:"progress"`
	WallProgress *CategoryProgress                     `json:"wall_progress,omitempty"`
	WallStats    *wall.Stats                           `json:"wall_stats,omitempty"`
}
