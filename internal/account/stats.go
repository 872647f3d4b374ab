package account

import (
	"townkeeper/internal/catalog"
	"townkeeper/internal/upgrade"
	"townkeeper/internal/wall"
)

// Aggregate roll-ups over an account's entity collection. Read-only; the
// only side effect in the stats path is the wall ledger's create-on-read.

// PerCategoryTotals counts total, maxed and upgrading entities per category.
// Every category appears in the result, including empty ones.
func PerCategoryTotals(entities []upgrade.Entity) map[catalog.Category]CategoryTotals {
	totals := make(map[catalog.Category]CategoryTotals, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		totals[cat] = CategoryTotals{}
	}

	for i := range entities {
		e := &entities[i]
		t := totals[e.Category]
		t.Total++
		if e.IsMaxed() {
			t.Maxed++
		}
		if e.Status == upgrade.StatusUpgrading {
			t.Upgrading++
		}
		totals[e.Category] = t
	}

	return totals
}

// OverallProgress sums current and max levels per category. The percentage
// is floored (integer division); the engine's per-upgrade percentage rounds.
func OverallProgress(entities []upgrade.Entity) map[catalog.Category]CategoryProgress {
	progress := make(map[catalog.Category]CategoryProgress, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		progress[cat] = CategoryProgress{}
	}

	for i := range entities {
		e := &entities[i]
		p := progress[e.Category]
		p.Current += e.CurrentLevel
		p.Max += e.MaxLevel
		progress[e.Category] = p
	}

	for cat, p := range progress {
		if p.Max > 0 {
			p.Percentage = p.Current * 100 / p.Max
		}
		progress[cat] = p
	}

	return progress
}

// WallProgress derives the wall completion view: current is the
// level-weighted piece sum, max assumes every piece at the ceiling.
func WallProgress(group *wall.Group) *CategoryProgress {
	if group == nil {
		return nil
	}

	current := 0
	for _, b := range group.Levels {
		current += b.Level * b.Count
	}
	max := group.MaxLevel * group.Levels.Total()

	p := &CategoryProgress{Current: current, Max: max}
	if max > 0 {
		p.Percentage = current * 100 / max
	}
	return p
}
