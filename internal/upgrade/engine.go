package upgrade

import (
	"math"
	"time"

	"townkeeper/internal/common"
)

// The lifecycle engine. Pure state-machine transitions on an Entity: the
// caller reads the clock once per operation and passes it in, so elapsed and
// remaining never skew within one call. Persistence lives in Service.

// =============================================
// 1. TRANSITIONS
// =============================================

// StartUpgrade moves an idle entity into Upgrading, or applies a
// zero-duration upgrade instantly. The entity is mutated in place.
func StartUpgrade(e *Entity, durationSeconds, cost int, now time.Time) (*StartResult, error) {
	if e.Status == StatusUpgrading {
		return nil, common.Conflictf("already upgrading")
	}
	if e.IsMaxed() {
		return nil, common.Conflictf("at max level")
	}
	if durationSeconds < 0 {
		return nil, common.Validationf("duration must not be negative")
	}
	if cost < 0 {
		return nil, common.Validationf("cost must not be negative")
	}

	if durationSeconds == 0 {
		// Instant upgrade: apply synchronously, never enter Upgrading.
		e.CurrentLevel++
		if e.CurrentLevel > e.MaxLevel {
			e.CurrentLevel = e.MaxLevel
		}
		e.Status = StatusIdle
		e.UpgradeStartTime = nil
		e.UpgradeEndTime = nil
		e.UpgradeCost = cost
		e.UpgradeTimeSeconds = 0
		return &StartResult{Entity: e, Instant: true}, nil
	}

	start := now
	end := now.Add(time.Duration(durationSeconds) * time.Second)
	e.Status = StatusUpgrading
	e.UpgradeStartTime = &start
	e.UpgradeEndTime = &end
	e.UpgradeCost = cost
	e.UpgradeTimeSeconds = durationSeconds
	return &StartResult{Entity: e, Instant: false}, nil
}

// FinishUpgrade finalizes a running upgrade: level +1 (no-op at max) and all
// temporal/cost fields reset. Deliberately callable before the timer elapses;
// completion timing is only enforced by the caller observing progress.
func FinishUpgrade(e *Entity) error {
	if e.Status != StatusUpgrading {
		return common.Conflictf("not currently upgrading")
	}

	if e.CurrentLevel < e.MaxLevel {
		e.CurrentLevel++
	}
	resetUpgradeFields(e)
	return nil
}

// CancelUpgrade aborts a running upgrade. The level is untouched.
func CancelUpgrade(e *Entity) error {
	if e.Status != StatusUpgrading {
		return common.Conflictf("not currently upgrading")
	}

	resetUpgradeFields(e)
	return nil
}

func resetUpgradeFields(e *Entity) {
	e.Status = StatusIdle
	e.UpgradeStartTime = nil
	e.UpgradeEndTime = nil
	e.UpgradeCost = 0
	e.UpgradeTimeSeconds = 0
}

// =============================================
// 2. DERIVED READS
// =============================================

// ComputeProgress reports percent progress and remaining time at the given
// instant. Nothing transitions automatically: once now passes the end time
// the entity is reported as finished-pending-finalize but stays Upgrading in
// storage until FinishUpgrade or CancelUpgrade.
func ComputeProgress(e *Entity, now time.Time) *Progress {
	if e.Status != StatusUpgrading || e.UpgradeStartTime == nil || e.UpgradeEndTime == nil {
		progress := 0
		if e.Status == StatusIdle {
			progress = 100
		}
		return &Progress{
			Status:           displayStatus(e.Status),
			Progress:         progress,
			RemainingSeconds: 0,
		}
	}

	// Millisecond arithmetic internally, whole seconds at the boundary.
	startMs := e.UpgradeStartTime.UnixMilli()
	endMs := e.UpgradeEndTime.UnixMilli()
	nowMs := now.UnixMilli()

	totalMs := endMs - startMs
	elapsedMs := nowMs - startMs
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	if elapsedMs > totalMs {
		elapsedMs = totalMs
	}

	percent := 0
	if totalMs > 0 {
		percent = int(math.Round(float64(elapsedMs) / float64(totalMs) * 100))
	}

	if nowMs >= endMs {
		return &Progress{
			Status:           DisplayFinishedPending,
			Progress:         100,
			RemainingSeconds: 0,
			EndsAt:           e.UpgradeEndTime,
		}
	}

	remainingMs := endMs - nowMs
	return &Progress{
		Status:           DisplayUpgrading,
		Progress:         percent,
		RemainingSeconds: (remainingMs + 999) / 1000,
		EndsAt:           e.UpgradeEndTime,
	}
}

// ValidateUpgrade is the read-only eligibility check used for UI gating.
func ValidateUpgrade(e *Entity) *Eligibility {
	return &Eligibility{
		CanUpgrade:   e.Status == StatusIdle && e.CurrentLevel < e.MaxLevel,
		CurrentLevel: e.CurrentLevel,
		MaxLevel:     e.MaxLevel,
		Status:       e.Status,
	}
}

func displayStatus(s Status) string {
	switch s {
	case StatusUpgrading:
		return DisplayUpgrading
	default:
		return DisplayIdle
	}
}
