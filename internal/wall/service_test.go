package wall

import (
	"testing"

	"townkeeper/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubAccounts resolves every account to a fixed town-hall level.
type stubAccounts struct {
	townHall int
}

func (s *stubAccounts) TownHallLevel(tx *gorm.DB, accountID, userID uuid.UUID) (int, error) {
	return s.townHall, nil
}

func newTestService(t *testing.T, townHall int) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Group{}))

	return NewService(db, &stubAccounts{townHall: townHall})
}

func TestGetStats_LazyProvision(t *testing.T) {
	svc := newTestService(t, 9)
	userID, accountID := uuid.New(), uuid.New()

	stats, err := svc.GetStats(userID, accountID)
	require.NoError(t, err)

	// TH9: 250 pieces, wall level cap 10, all at the starting level.
	assert.Equal(t, 250, stats.Total)
	assert.Equal(t, 0, stats.Maxed)
	assert.Equal(t, 250, stats.TotalAllowed)
	assert.Equal(t, 10, stats.MaxLevel)
	assert.Equal(t, WallLevels{{Level: 1, Count: 250}}, stats.ByLevel)

	// Second read finds the persisted ledger instead of creating another.
	again, err := svc.GetStats(userID, accountID)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestGetStats_NoAllowance(t *testing.T) {
	svc := newTestService(t, 1)

	_, err := svc.GetStats(uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindValidation))
}

func TestUpgrade_MovesBetweenBuckets(t *testing.T) {
	svc := newTestService(t, 9)
	userID, accountID := uuid.New(), uuid.New()

	result, err := svc.Upgrade(userID, accountID, &UpgradeRequest{FromLevel: 1, ToLevel: 4, Count: 60})
	require.NoError(t, err)

	assert.Equal(t, 250, result.TotalAllowed)
	assert.Equal(t, WallLevels{{Level: 1, Count: 190}, {Level: 4, Count: 60}}, result.Group.Levels)

	// The move persisted.
	stats, err := svc.GetStats(userID, accountID)
	require.NoError(t, err)
	assert.Equal(t, 60, stats.ByLevel.CountAt(4))
	assert.Equal(t, 250, stats.Total, "moves never change the piece total")
}

func TestUpgrade_ValidationOrder(t *testing.T) {
	svc := newTestService(t, 9)
	userID, accountID := uuid.New(), uuid.New()

	cases := []struct {
		name string
		req  UpgradeRequest
	}{
		{"negative from", UpgradeRequest{FromLevel: -1, ToLevel: 2, Count: 5}},
		{"to not above from", UpgradeRequest{FromLevel: 3, ToLevel: 3, Count: 5}},
		{"zero count", UpgradeRequest{FromLevel: 1, ToLevel: 2, Count: 0}},
		{"above wall cap", UpgradeRequest{FromLevel: 1, ToLevel: 11, Count: 5}},
		{"insufficient at level", UpgradeRequest{FromLevel: 3, ToLevel: 4, Count: 50}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upgrade(userID, accountID, &tc.req)
			require.Error(t, err)
			assert.True(t, common.IsKind(err, common.KindValidation))
		})
	}

	// Nothing persisted by the rejected requests.
	stats, err := svc.GetStats(userID, accountID)
	require.NoError(t, err)
	assert.Equal(t, WallLevels{{Level: 1, Count: 250}}, stats.ByLevel)
}

func TestUpgrade_InsufficientCountAtPartialBucket(t *testing.T) {
	svc := newTestService(t, 9)
	userID, accountID := uuid.New(), uuid.New()

	_, err := svc.Upgrade(userID, accountID, &UpgradeRequest{FromLevel: 1, ToLevel: 3, Count: 10})
	require.NoError(t, err)

	// Only 10 pieces sit at level 3; asking for 50 must fail.
	_, err = svc.Upgrade(userID, accountID, &UpgradeRequest{FromLevel: 3, ToLevel: 5, Count: 50})
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindValidation))
}

func TestUpgrade_MaxedStat(t *testing.T) {
	svc := newTestService(t, 9)
	userID, accountID := uuid.New(), uuid.New()

	_, err := svc.Upgrade(userID, accountID, &UpgradeRequest{FromLevel: 1, ToLevel: 10, Count: 40})
	require.NoError(t, err)

	stats, err := svc.GetStats(userID, accountID)
	require.NoError(t, err)
	assert.Equal(t, 40, stats.Maxed)
}

func TestUpgrade_TownHallLimitGuard(t *testing.T) {
	svc := newTestService(t, 9)
	userID, accountID := uuid.New(), uuid.New()

	// Seed a ledger that already violates the allowance. The post-move guard
	// then blocks every further mutation.
	group := NewGroup(accountID, 9)
	group.Levels = WallLevels{{Level: 1, Count: 300}}
	require.NoError(t, svc.db.Create(group).Error)

	_, err := svc.Upgrade(userID, accountID, &UpgradeRequest{FromLevel: 1, ToLevel: 2, Count: 1})
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindValidation))
	assert.Contains(t, err.Error(), "Town Hall limit")
}

func TestNewGroupFromBuckets_ClampsToAllowance(t *testing.T) {
	accountID := uuid.New()

	// TH9 allows 250 pieces at most, wall cap 10.
	group := NewGroupFromBuckets(accountID, 9, WallLevels{
		{Level: 3, Count: 200},
		{Level: 12, Count: 100}, // over the cap, clamped to level 10
	})
	require.NotNil(t, group)

	assert.Equal(t, 250, group.Levels.Total())
	assert.Equal(t, 200, group.Levels.CountAt(3))
	assert.Equal(t, 50, group.Levels.CountAt(10), "overflow count trimmed to the allowance")
}

func TestNewGroup_NoAllowance(t *testing.T) {
	assert.Nil(t, NewGroup(uuid.New(), 1))
}
