package wall

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"

	"townkeeper/internal/common"

	"github.com/google/uuid"
)

// =============================================
// 1. WALL GROUP MODEL
// =============================================

// Walls are not tracked as individual entities: each account owns one Group
// holding {level: count} buckets, and upgrades move a count of pieces from
// one bucket to another.
type Group struct {
	common.BaseModel
	AccountID    uuid.UUID  `json:"account_id" gorm:"type:uuid;not null;uniqueIndex"`
	MaxLevel     int        `json:"max_level" gorm:"not null"`
	TotalAllowed int        `json:"total_allowed" gorm:"not null"`
	Levels       WallLevels `json:"levels" gorm:"type:jsonb;not null"`
}

func (Group) TableName() string {
	return "wall_groups"
}

// startLevel is the level freshly provisioned wall pieces begin at.
const startLevel = 1

// =============================================
// 2. LEVEL BUCKETS (JSONB)
// =============================================

// WallLevel is one {level, count} bucket.
type WallLevel struct {
	Level int `json:"level"`
	Count int `json:"count"`
}

// WallLevels is the bucket list, kept sorted ascending by level with no
// duplicate levels and no zero-count buckets.
type WallLevels []WallLevel

// Scan implements the sql.Scanner interface for WallLevels
func (w *WallLevels) Scan(value interface{}) error {
	if value == nil {
		*w = WallLevels{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into WallLevels", value)
	}

	return json.Unmarshal(bytes, w)
}

// Value implements the driver.Valuer interface for WallLevels
func (w WallLevels) Value() (driver.Value, error) {
	if len(w) == 0 {
		return "[]", nil
	}

	bytes, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

// Total sums piece counts across all buckets.
func (w WallLevels) Total() int {
	total := 0
	for _, b := range w {
		total += b.Count
	}
	return total
}

// CountAt returns the piece count at one level.
func (w WallLevels) CountAt(level int) int {
	for _, b := range w {
		if b.Level == level {
			return b.Count
		}
	}
	return 0
}

// MaxedCount sums counts of buckets at or above the ceiling.
func (w WallLevels) MaxedCount(maxLevel int) int {
	maxed := 0
	for _, b := range w {
		if b.Level >= maxLevel {
			maxed += b.Count
		}
	}
	return maxed
}

// Move returns a copy with count pieces moved from one level bucket to
// another. Zero-count buckets are dropped and the result is re-sorted. The
// caller validates availability first.
func (w WallLevels) Move(fromLevel, toLevel, count int) WallLevels {
	moved := WallLevels{}
	toSeen := false
	for _, b := range w {
		switch b.Level {
		case fromLevel:
			b.Count -= count
		case toLevel:
			b.Count += count
			toSeen = true
		}
		if b.Count > 0 {
			moved = append(moved, b)
		}
	}
	if !toSeen {
		moved = append(moved, WallLevel{Level: toLevel, Count: count})
	}

	sort.Slice(moved, func(i, j int) bool { return moved[i].Level < moved[j].Level })
	return moved
}

// =============================================
// 3. REQUEST / RESPONSE SHAPES
// =============================================

// UpgradeRequest moves count pieces from one level to another.
type UpgradeRequest struct {
	FromLevel int `json:"from_level"`
	ToLevel   int `json:"to_level"`
	Count     int `json:"count"`
}

// UpgradeResult is the post-move ledger plus the static allowance.
type UpgradeResult struct {
	Group        *Group `json:"group"`
	TotalAllowed int    `json:"total_allowed"`
}

// Stats is the wall roll-up.
type Stats struct {
	Total        int        `json:"total"`
	Maxed        int        `json:"maxed"`
	TotalAllowed int        `json:"total_allowed"`
	MaxLevel     int        `json:"max_level"`
	ByLevel      WallLevels `json:"by_level"`
}
