package account

import (
	"testing"

	"townkeeper/internal/catalog"
	"townkeeper/internal/common"
	"townkeeper/internal/upgrade"
	"townkeeper/internal/wall"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Account{}, &upgrade.Entity{}, &wall.Group{}))

	walls := wall.NewService(db, NewGuard(db))
	return NewService(db, walls)
}

func TestProvision_StarterSet(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	result, err := svc.Provision(userID, &CreateAccountRequest{Name: "Main", TownHallLevel: 9})
	require.NoError(t, err)

	assert.Equal(t, "Main", result.Account.Name)
	assert.Equal(t, 9, result.Account.TownHallLevel)
	assert.Equal(t, 0, result.Account.TotalUpgrades)
	assert.NotEmpty(t, result.Entities)

	// Every starter entity is idle at level 0.
	for _, e := range result.Entities {
		assert.Equal(t, 0, e.CurrentLevel)
		assert.Equal(t, upgrade.StatusIdle, e.Status)
		assert.Equal(t, result.Account.ID, e.AccountID)
	}

	// TH9 heroes: king and queen, not the warden.
	heroNames := []string{}
	for _, e := range result.Entities {
		if e.Category == catalog.CategoryHero {
			heroNames = append(heroNames, e.Name)
		}
	}
	assert.ElementsMatch(t, []string{"Barbarian King", "Archer Queen"}, heroNames)

	// Wall ledger provisioned alongside.
	require.NotNil(t, result.WallGroup)
	assert.Equal(t, 250, result.WallGroup.Levels.Total())

	// Fresh provision: nothing upgrading, nothing maxed.
	stats, err := svc.GetStats(userID, result.Account.ID)
	require.NoError(t, err)
	for cat, totals := range stats.PerCategory {
		assert.Equal(t, 0, totals.Upgrading, "category %s", cat)
		assert.Equal(t, 0, totals.Maxed, "category %s", cat)
	}
}

func TestProvision_TownHallOutOfRange(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Provision(uuid.New(), &CreateAccountRequest{Name: "Main", TownHallLevel: 15})
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindValidation))
}

func TestProvision_NoWallsBeforeUnlock(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.Provision(uuid.New(), &CreateAccountRequest{Name: "Starter", TownHallLevel: 1})
	require.NoError(t, err)
	assert.Nil(t, result.WallGroup)
}

func TestImport_SeedsLevelsClamped(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	result, err := svc.Import(userID, &ImportSpec{
		Name:          "Imported",
		Tag:           "#ABC123",
		TownHallLevel: 9,
		Entities: []ImportEntity{
			{Name: "P.E.K.K.A", Category: catalog.CategoryTroop, Level: 99},
			{Name: "Barbarian King", Category: catalog.CategoryHero, Level: 12},
			{Name: "No Such Thing", Category: catalog.CategoryTroop, Level: 5},
		},
		Walls: wall.WallLevels{{Level: 8, Count: 100}},
	})
	require.NoError(t, err)

	require.NotNil(t, result.Account.Tag)
	assert.Equal(t, "#ABC123", *result.Account.Tag)

	byName := map[string]*upgrade.Entity{}
	for i := range result.Entities {
		byName[result.Entities[i].Name] = &result.Entities[i]
	}

	pekka := byName["P.E.K.K.A"]
	require.NotNil(t, pekka)
	assert.Equal(t, pekka.MaxLevel, pekka.CurrentLevel, "seed level clamps to the ceiling")

	king := byName["Barbarian King"]
	require.NotNil(t, king)
	assert.Equal(t, 12, king.CurrentLevel)

	// Unknown snapshot entries are dropped silently.
	assert.NotContains(t, byName, "No Such Thing")

	require.NotNil(t, result.WallGroup)
	assert.Equal(t, 100, result.WallGroup.Levels.CountAt(8))
}

func TestListGetDelete_Cascade(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	first, err := svc.Provision(userID, &CreateAccountRequest{Name: "One", TownHallLevel: 5})
	require.NoError(t, err)
	_, err = svc.Provision(userID, &CreateAccountRequest{Name: "Two", TownHallLevel: 7})
	require.NoError(t, err)

	accounts, err := svc.List(userID)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	// Foreign access is indistinguishable from a missing account.
	_, err = svc.Get(uuid.New(), first.Account.ID)
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindNotFound))

	require.NoError(t, svc.Delete(userID, first.Account.ID))

	accounts, err = svc.List(userID)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	// Owned entities went with the account.
	var count int64
	require.NoError(t, svc.db.Model(&upgrade.Entity{}).Where("account_id = ?", first.Account.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	require.NoError(t, svc.db.Model(&wall.Group{}).Where("account_id = ?", first.Account.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGetStats_WallSectionOptional(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	result, err := svc.Provision(userID, &CreateAccountRequest{Name: "Starter", TownHallLevel: 1})
	require.NoError(t, err)

	stats, err := svc.GetStats(userID, result.Account.ID)
	require.NoError(t, err)
	assert.Nil(t, stats.WallStats, "TH1 has no wall allowance")
	assert.Nil(t, stats.WallProgress)
}

func TestGuard_IncrementTotalUpgrades(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	result, err := svc.Provision(userID, &CreateAccountRequest{Name: "Main", TownHallLevel: 5})
	require.NoError(t, err)

	guard := NewGuard(svc.db)
	require.NoError(t, guard.IncrementTotalUpgrades(svc.db, result.Account.ID))
	require.NoError(t, guard.IncrementTotalUpgrades(svc.db, result.Account.ID))

	acc, err := svc.Get(userID, result.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, acc.TotalUpgrades)

	err = guard.IncrementTotalUpgrades(svc.db, uuid.New())
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindNotFound))
}
