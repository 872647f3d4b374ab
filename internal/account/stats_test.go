package account

import (
	"testing"

	"townkeeper/internal/catalog"
	"townkeeper/internal/upgrade"
	"townkeeper/internal/wall"

	"github.com/stretchr/testify/assert"
)

func TestPerCategoryTotals(t *testing.T) {
	entities := []upgrade.Entity{
		{Category: catalog.CategoryBuilding, CurrentLevel: 5, MaxLevel: 10, Status: upgrade.StatusIdle},
		{Category: catalog.CategoryBuilding, CurrentLevel: 10, MaxLevel: 10, Status: upgrade.StatusIdle},
		{Category: catalog.CategoryBuilding, CurrentLevel: 2, MaxLevel: 10, Status: upgrade.StatusUpgrading},
		{Category: catalog.CategoryHero, CurrentLevel: 40, MaxLevel: 40, Status: upgrade.StatusIdle},
	}

	totals := PerCategoryTotals(entities)

	assert.Equal(t, CategoryTotals{Total: 3, Maxed: 1, Upgrading: 1}, totals[catalog.CategoryBuilding])
	assert.Equal(t, CategoryTotals{Total: 1, Maxed: 1}, totals[catalog.CategoryHero])

	// Empty categories still appear.
	assert.Contains(t, totals, catalog.CategoryPet)
	assert.Equal(t, CategoryTotals{}, totals[catalog.CategoryPet])
}

func TestOverallProgress_FlooredPercentage(t *testing.T) {
	entities := []upgrade.Entity{
		{Category: catalog.CategoryTroop, CurrentLevel: 1, MaxLevel: 3},
		{Category: catalog.CategoryTroop, CurrentLevel: 1, MaxLevel: 3},
	}

	progress := OverallProgress(entities)

	p := progress[catalog.CategoryTroop]
	assert.Equal(t, 2, p.Current)
	assert.Equal(t, 6, p.Max)
	assert.Equal(t, 33, p.Percentage, "2/6 floors to 33, never rounds to 34")
}

func TestOverallProgress_EmptyCategoryIsZero(t *testing.T) {
	progress := OverallProgress(nil)
	for _, cat := range catalog.Categories {
		p := progress[cat]
		assert.Equal(t, 0, p.Percentage, "zero denominator must not divide")
	}
}

func TestWallProgress(t *testing.T) {
	group := &wall.Group{
		MaxLevel: 10,
		Levels:   wall.WallLevels{{Level: 1, Count: 100}, {Level: 10, Count: 100}},
	}

	p := WallProgress(group)
	assert.Equal(t, 1100, p.Current)
	assert.Equal(t, 2000, p.Max)
	assert.Equal(t, 55, p.Percentage)

	assert.Nil(t, WallProgress(nil))
}
