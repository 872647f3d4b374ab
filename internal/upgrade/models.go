package upgrade

import (
	"time"

	"townkeeper/internal/catalog"
	"townkeeper/internal/common"

	"github.com/google/uuid"
)

// =============================================
// 1. ENTITY MODEL
// =============================================

// Status is the stored lifecycle state of an entity.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusUpgrading Status = "upgrading"
)

// Display statuses reported by progress queries. StatusFinishedPending is
// derived from the clock and never stored: an entity sits in it until
// FinishUpgrade or CancelUpgrade is called.
const (
	DisplayIdle            = "Idle"
	DisplayUpgrading       = "Upgrading"
	DisplayFinishedPending = "Finished (pending finalize)"
)

// Entity is one upgradable record. All six categories share this shape;
// category-specific extras (housing space, assigned hero) stay nullable for
// the rest.
type Entity struct {
	common.BaseModel
	AccountID    uuid.UUID            `json:"account_id" gorm:"type:uuid;not null;index"`
	Name         string               `json:"name" gorm:"type:varchar(100);not null"`
	Category     catalog.Category     `json:"category" gorm:"type:varchar(20);not null;index"`
	BuildingType catalog.BuildingType `json:"building_type,omitempty" gorm:"type:varchar(20)"`
	CurrentLevel int                  `json:"current_level" gorm:"not null;default:0;check:current_level >= 0"`
	MaxLevel     int                  `json:"max_level" gorm:"not null;check:max_level >= 1"`
	Status       Status               `json:"status" gorm:"type:varchar(20);not null;default:'idle';index"`

	// Temporal window: both set while upgrading, both null while idle.
	UpgradeStartTime *time.Time `json:"upgrade_start_time,omitempty"`
	UpgradeEndTime   *time.Time `json:"upgrade_end_time,omitempty"`

	// Bookkeeping for the running (or, for instant upgrades, the last) upgrade.
	UpgradeCost        int `json:"upgrade_cost" gorm:"not null;default:0"`
	UpgradeTimeSeconds int `json:"upgrade_time_seconds" gorm:"not null;default:0"`

	// Category extras.
	HousingSpace   int        `json:"housing_space,omitempty" gorm:"not null;default:0"`
	AssignedHeroID *uuid.UUID `json:"assigned_hero_id,omitempty" gorm:"type:uuid"` // pets only, soft reference
}

func (Entity) TableName() string {
	return "entities"
}

// IsMaxed reports whether the entity reached its level ceiling.
func (e *Entity) IsMaxed() bool {
	return e.CurrentLevel >= e.MaxLevel
}

// =============================================
// 2. REQUEST / RESULT SHAPES
// =============================================

// StartUpgradeRequest carries the caller-supplied duration and cost.
type StartUpgradeRequest struct {
	DurationSeconds int `json:"duration_seconds"`
	Cost            int `json:"cost"`
}

// StartResult is the outcome of StartUpgrade. Instant marks a zero-duration
// upgrade that was applied synchronously without entering Upgrading.
type StartResult struct {
	Entity  *Entity `json:"entity"`
	Instant bool    `json:"instant"`
}

// Progress is the derived, read-only view of a running upgrade.
type Progress struct {
	Status           string     `json:"status"`
	Progress         int        `json:"progress"`
	RemainingSeconds int64      `json:"remaining_seconds"`
	EndsAt           *time.Time `json:"ends_at,omitempty"`
}

// Eligibility is the read-only start-upgrade gate for UI checks.
type Eligibility struct {
	CanUpgrade   bool   `json:"can_upgrade"`
	CurrentLevel int    `json:"current_level"`
	MaxLevel     int    `json:"max_level"`
	Status       Status `json:"status"`
}

// SetLevelRequest is the administrative level override.
type SetLevelRequest struct {
	Level int `json:"level"`
}
