package catalog

import (
	"sort"
	"strings"

	"townkeeper/internal/common"
)

// =============================================
// 1. CATEGORIES & TEMPLATE TYPES
// =============================================

// Category distinguishes the six upgradable entity families.
type Category string

const (
	CategoryBuilding Category = "building"
	CategoryHero     Category = "hero"
	CategoryTroop    Category = "troop"
	CategorySpell    Category = "spell"
	CategorySiege    Category = "siege"
	CategoryPet      Category = "pet"
)

// Categories lists every entity category in a stable order.
var Categories = []Category{
	CategoryBuilding,
	CategoryHero,
	CategoryTroop,
	CategorySpell,
	CategorySiege,
	CategoryPet,
}

// BuildingType is the building sub-category.
type BuildingType string

const (
	BuildingResource BuildingType = "resource"
	BuildingDefense  BuildingType = "defense"
	BuildingArmy     BuildingType = "army"
	BuildingWall     BuildingType = "wall"
	BuildingTrap     BuildingType = "trap"
	BuildingSpecial  BuildingType = "special"
)

// Template is one catalog entry for a given town-hall level.
type Template struct {
	Name            string       `json:"name"`
	Category        Category     `json:"category"`
	BuildingType    BuildingType `json:"building_type,omitempty"`
	Count           int          `json:"count"`
	MaxLevel        int          `json:"max_level"`
	HousingSpace    int          `json:"housing_space,omitempty"`
	BaseCost        int          `json:"base_cost,omitempty"`
	BaseTimeSeconds int          `json:"base_time_seconds,omitempty"`
}

// WallAllowance is the per-town-hall wall piece cap and level ceiling.
type WallAllowance struct {
	Count    int `json:"count"`
	MaxLevel int `json:"max_level"`
}

// MinTownHall and MaxTownHall bound the configuration table.
const (
	MinTownHall = 1
	MaxTownHall = 14
)

// =============================================
// 2. LOOKUP
// =============================================

// NormalizeKey lowercases the name and strips everything that is not a
// letter or digit, so "P.E.K.K.A" and "pekka" resolve to the same entry.
func NormalizeKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup resolves a template by town-hall level, category and a loosely
// spelled name. A miss returns a NotFound error carrying the valid names for
// that town hall + category so the caller can present alternatives.
func Lookup(townHallLevel int, category Category, nameOrKey string) (*Template, error) {
	if townHallLevel < MinTownHall || townHallLevel > MaxTownHall {
		return nil, common.Validationf("town hall level %d out of range (%d-%d)", townHallLevel, MinTownHall, MaxTownHall)
	}

	key := NormalizeKey(nameOrKey)
	for _, tpl := range TemplatesFor(townHallLevel) {
		if tpl.Category == category && NormalizeKey(tpl.Name) == key {
			t := tpl
			return &t, nil
		}
	}

	return nil, common.NotFoundf("no %s named %q at town hall %d", category, nameOrKey, townHallLevel).
		WithDetails(common.JSONB{"valid_names": ValidNames(townHallLevel, category)})
}

// ValidNames returns the canonical names available for a category at the
// given town-hall level, sorted for stable output.
func ValidNames(townHallLevel int, category Category) []string {
	names := []string{}
	for _, tpl := range TemplatesFor(townHallLevel) {
		if tpl.Category == category {
			names = append(names, tpl.Name)
		}
	}
	sort.Strings(names)
	return names
}

// =============================================
// 3. PROVISIONING SOURCE
// =============================================

// TemplatesFor returns every template unlocked at the given town-hall level,
// with counts and level ceilings resolved for that level. Out-of-range levels
// return an empty set.
func TemplatesFor(townHallLevel int) []Template {
	if townHallLevel < MinTownHall || townHallLevel > MaxTownHall {
		return nil
	}

	templates := []Template{}
	for _, def := range entityDefs {
		if def.unlockTH > townHallLevel {
			continue
		}
		count := 1
		if def.counts != nil {
			count = stepValue(def.counts, townHallLevel)
		}
		if count <= 0 {
			continue
		}
		templates = append(templates, Template{
			Name:            def.name,
			Category:        def.category,
			BuildingType:    def.buildingType,
			Count:           count,
			MaxLevel:        stepValue(def.maxLevels, townHallLevel),
			HousingSpace:    def.housingSpace,
			BaseCost:        def.baseCost,
			BaseTimeSeconds: def.baseTimeSeconds,
		})
	}
	return templates
}

// WallAllowanceFor returns the wall allowance for a town-hall level. Levels
// below the first wall unlock return a zero allowance.
func WallAllowanceFor(townHallLevel int) WallAllowance {
	if townHallLevel < MinTownHall || townHallLevel > MaxTownHall {
		return WallAllowance{}
	}
	allowance, ok := wallAllowances[townHallLevel]
	if !ok {
		return WallAllowance{}
	}
	return allowance
}

// stepValue resolves a sparse per-town-hall table: the value of the highest
// threshold not exceeding th applies.
func stepValue(steps map[int]int, th int) int {
	value := 0
	best := -1
	for at, v := range steps {
		if at <= th && at > best {
			best = at
			value = v
		}
	}
	return value
}
