package upgrade

import (
	"testing"
	"time"

	"townkeeper/internal/catalog"
	"townkeeper/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEntity(level, maxLevel int) *Entity {
	e := &Entity{
		AccountID:    uuid.New(),
		Name:         "Cannon",
		Category:     catalog.CategoryBuilding,
		BuildingType: catalog.BuildingDefense,
		CurrentLevel: level,
		MaxLevel:     maxLevel,
		Status:       StatusIdle,
	}
	e.ID = uuid.New()
	return e
}

func TestStartUpgrade_SetsTemporalWindow(t *testing.T) {
	e := newTestEntity(3, 10)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	result, err := StartUpgrade(e, 3600, 500, now)
	require.NoError(t, err)

	assert.False(t, result.Instant)
	assert.Equal(t, StatusUpgrading, e.Status)
	assert.Equal(t, 3, e.CurrentLevel, "level must not change until finish")
	require.NotNil(t, e.UpgradeStartTime)
	require.NotNil(t, e.UpgradeEndTime)
	assert.Equal(t, now, *e.UpgradeStartTime)
	assert.Equal(t, now.Add(time.Hour), *e.UpgradeEndTime)
	assert.Equal(t, 500, e.UpgradeCost)
	assert.Equal(t, 3600, e.UpgradeTimeSeconds)
}

func TestStartUpgrade_AlreadyUpgrading(t *testing.T) {
	e := newTestEntity(3, 10)
	now := time.Now()

	_, err := StartUpgrade(e, 3600, 500, now)
	require.NoError(t, err)

	_, err = StartUpgrade(e, 3600, 500, now)
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindConflict))
}

func TestStartUpgrade_AtMaxLevel(t *testing.T) {
	e := newTestEntity(10, 10)

	_, err := StartUpgrade(e, 3600, 500, time.Now())
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindConflict))
	assert.Equal(t, StatusIdle, e.Status)
}

func TestStartUpgrade_NegativeInputs(t *testing.T) {
	e := newTestEntity(3, 10)

	_, err := StartUpgrade(e, -1, 500, time.Now())
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindValidation))

	_, err = StartUpgrade(e, 3600, -1, time.Now())
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindValidation))

	assert.Equal(t, StatusIdle, e.Status, "failed start must not mutate the entity")
}

func TestStartUpgrade_InstantAppliesSynchronously(t *testing.T) {
	e := newTestEntity(5, 10)

	result, err := StartUpgrade(e, 0, 250, time.Now())
	require.NoError(t, err)

	assert.True(t, result.Instant)
	assert.Equal(t, 6, e.CurrentLevel)
	assert.Equal(t, StatusIdle, e.Status, "instant upgrade never enters Upgrading")
	assert.Nil(t, e.UpgradeStartTime)
	assert.Nil(t, e.UpgradeEndTime)
	assert.Equal(t, 250, e.UpgradeCost, "instant upgrade still records its cost")
	assert.Equal(t, 0, e.UpgradeTimeSeconds)
}

func TestStartUpgrade_InstantClampsAtMax(t *testing.T) {
	e := newTestEntity(9, 10)

	result, err := StartUpgrade(e, 0, 0, time.Now())
	require.NoError(t, err)
	assert.True(t, result.Instant)
	assert.Equal(t, 10, e.CurrentLevel)

	// Now maxed: another start must be rejected.
	_, err = StartUpgrade(e, 0, 0, time.Now())
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindConflict))
}

func TestFinishUpgrade_IncrementsAndResets(t *testing.T) {
	e := newTestEntity(3, 10)
	now := time.Now()

	_, err := StartUpgrade(e, 3600, 500, now)
	require.NoError(t, err)

	require.NoError(t, FinishUpgrade(e))

	assert.Equal(t, 4, e.CurrentLevel)
	assert.Equal(t, StatusIdle, e.Status)
	assert.Nil(t, e.UpgradeStartTime)
	assert.Nil(t, e.UpgradeEndTime)
	assert.Equal(t, 0, e.UpgradeCost)
	assert.Equal(t, 0, e.UpgradeTimeSeconds)
}

func TestFinishUpgrade_BeforeTimerElapses(t *testing.T) {
	// Finish is permissive: the timer gates nothing, only the state does.
	e := newTestEntity(3, 10)
	now := time.Now()

	_, err := StartUpgrade(e, 86400, 500, now)
	require.NoError(t, err)

	require.NoError(t, FinishUpgrade(e))
	assert.Equal(t, 4, e.CurrentLevel)
}

func TestFinishUpgrade_NotUpgrading(t *testing.T) {
	e := newTestEntity(3, 10)

	err := FinishUpgrade(e)
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindConflict))
	assert.Equal(t, 3, e.CurrentLevel)
}

func TestCancelUpgrade_LevelUntouched(t *testing.T) {
	e := newTestEntity(3, 10)
	now := time.Now()

	_, err := StartUpgrade(e, 3600, 500, now)
	require.NoError(t, err)

	require.NoError(t, CancelUpgrade(e))

	assert.Equal(t, 3, e.CurrentLevel)
	assert.Equal(t, StatusIdle, e.Status)
	assert.Nil(t, e.UpgradeStartTime)
	assert.Nil(t, e.UpgradeEndTime)
	assert.Equal(t, 0, e.UpgradeCost)
}

func TestCancelUpgrade_Twice(t *testing.T) {
	e := newTestEntity(3, 10)
	now := time.Now()

	_, err := StartUpgrade(e, 3600, 500, now)
	require.NoError(t, err)
	require.NoError(t, CancelUpgrade(e))

	err = CancelUpgrade(e)
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindConflict))
}

func TestComputeProgress_RoundTrip(t *testing.T) {
	e := newTestEntity(3, 10)
	t0 := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	_, err := StartUpgrade(e, 3600, 500, t0)
	require.NoError(t, err)

	p := ComputeProgress(e, t0)
	assert.Equal(t, DisplayUpgrading, p.Status)
	assert.Equal(t, 0, p.Progress)
	assert.Equal(t, int64(3600), p.RemainingSeconds)

	p = ComputeProgress(e, t0.Add(30*time.Minute))
	assert.Equal(t, DisplayUpgrading, p.Status)
	assert.Equal(t, 50, p.Progress)
	assert.Equal(t, int64(1800), p.RemainingSeconds)

	p = ComputeProgress(e, t0.Add(time.Hour))
	assert.Equal(t, DisplayFinishedPending, p.Status)
	assert.Equal(t, 100, p.Progress)
	assert.Equal(t, int64(0), p.RemainingSeconds)
	require.NotNil(t, p.EndsAt)
	assert.Equal(t, *e.UpgradeEndTime, *p.EndsAt)

	// Lazy completion: the stored state is still Upgrading.
	assert.Equal(t, StatusUpgrading, e.Status)
}

func TestComputeProgress_Monotonic(t *testing.T) {
	e := newTestEntity(0, 10)
	t0 := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	_, err := StartUpgrade(e, 7200, 100, t0)
	require.NoError(t, err)

	prev := -1
	for offset := time.Duration(0); offset <= 2*time.Hour; offset += 7 * time.Minute {
		p := ComputeProgress(e, t0.Add(offset))
		assert.GreaterOrEqual(t, p.Progress, prev)
		prev = p.Progress
	}
}

func TestComputeProgress_RemainingSecondsCeiling(t *testing.T) {
	e := newTestEntity(0, 10)
	t0 := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	_, err := StartUpgrade(e, 10, 0, t0)
	require.NoError(t, err)

	// 500ms in: 9.5s left rounds up to 10.
	p := ComputeProgress(e, t0.Add(500*time.Millisecond))
	assert.Equal(t, int64(10), p.RemainingSeconds)

	p = ComputeProgress(e, t0.Add(9*time.Second))
	assert.Equal(t, int64(1), p.RemainingSeconds)
}

func TestComputeProgress_ClockBeforeStart(t *testing.T) {
	e := newTestEntity(0, 10)
	t0 := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	_, err := StartUpgrade(e, 3600, 0, t0)
	require.NoError(t, err)

	p := ComputeProgress(e, t0.Add(-time.Minute))
	assert.Equal(t, 0, p.Progress)
	assert.Equal(t, DisplayUpgrading, p.Status)
}

func TestComputeProgress_Idle(t *testing.T) {
	e := newTestEntity(3, 10)

	p := ComputeProgress(e, time.Now())
	assert.Equal(t, DisplayIdle, p.Status)
	assert.Equal(t, 100, p.Progress)
	assert.Equal(t, int64(0), p.RemainingSeconds)
	assert.Nil(t, p.EndsAt)
}

func TestValidateUpgrade(t *testing.T) {
	e := newTestEntity(3, 10)
	elig := ValidateUpgrade(e)
	assert.True(t, elig.CanUpgrade)

	e.CurrentLevel = 10
	elig = ValidateUpgrade(e)
	assert.False(t, elig.CanUpgrade)

	e.CurrentLevel = 3
	_, err := StartUpgrade(e, 3600, 0, time.Now())
	require.NoError(t, err)
	elig = ValidateUpgrade(e)
	assert.False(t, elig.CanUpgrade)
	assert.Equal(t, StatusUpgrading, elig.Status)
}
