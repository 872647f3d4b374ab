package catalog

// entityDef is the raw configuration row behind Template. counts and
// maxLevels are sparse step tables keyed by town-hall level: the entry with
// the highest key <= the queried level applies. A nil counts table means a
// single instance (heroes, troop/spell/siege/pet research levels).
//
// Values are a tracker-side simplification, not a replica of the live game
// economy.
type entityDef struct {
	name            string
	category        Category
	buildingType    BuildingType
	unlockTH        int
	counts          map[int]int
	maxLevels       map[int]int
	housingSpace    int
	baseCost        int
	baseTimeSeconds int
}

var entityDefs = []entityDef{
	// =============================================
	// BUILDINGS - DEFENSE
	// =============================================
	{name: "Cannon", category: CategoryBuilding, buildingType: BuildingDefense, unlockTH: 1,
		counts:    map[int]int{1: 2, 3: 3, 5: 4, 7: 5, 9: 6, 11: 7},
		maxLevels: map[int]int{1: 2, 2: 3, 3: 4, 4: 5, 5: 6, 6: 7, 7: 8, 8: 10, 9: 11, 10: 13, 11: 15, 12: 17, 13: 19, 14: 20},
		baseCost:  250, baseTimeSeconds: 60},
	{name: "Archer Tower", category: CategoryBuilding, buildingType: BuildingDefense, unlockTH: 2,
		counts:    map[int]int{2: 1, 4: 2, 5: 3, 7: 4, 9: 5, 10: 6, 11: 7, 13: 8},
		maxLevels: map[int]int{2: 2, 3: 3, 4: 4, 5: 6, 6: 7, 7: 8, 8: 10, 9: 11, 10: 13, 11: 15, 12: 17, 13: 19, 14: 20},
		baseCost:  1000, baseTimeSeconds: 300},
	{name: "Mortar", category: CategoryBuilding, buildingType: BuildingDefense, unlockTH: 3,
		counts:    map[int]int{3: 1, 6: 2, 7: 3, 8: 4},
		maxLevels: map[int]int{3: 1, 4: 2, 5: 3, 6: 4, 7: 5, 8: 6, 9: 7, 10: 8, 11: 10, 12: 12, 13: 14, 14: 15},
		baseCost:  5000, baseTimeSeconds: 3600},
	{name: "Air Defense", category: CategoryBuilding, buildingType: BuildingDefense, unlockTH: 4,
		counts:    map[int]int{4: 1, 6: 2, 7: 3, 9: 4},
		maxLevels: map[int]int{4: 2, 5: 3, 6: 4, 7: 5, 8: 6, 9: 7, 10: 8, 11: 9, 12: 10, 13: 12, 14: 13},
		baseCost:  22500, baseTimeSeconds: 7200},
	{name: "Wizard Tower", category: CategoryBuilding, buildingType: BuildingDefense, unlockTH: 5,
		counts:    map[int]int{5: 1, 7: 2, 8: 3, 9: 4, 10: 5},
		maxLevels: map[int]int{5: 2, 6: 3, 7: 4, 8: 6, 9: 7, 10: 9, 11: 10, 12: 12, 13: 14, 14: 15},
		baseCost:  120000, baseTimeSeconds: 14400},
	{name: "Hidden Tesla", category: CategoryBuilding, buildingType: BuildingDefense, unlockTH: 7,
		counts:    map[int]int{7: 2, 8: 3, 9: 4, 12: 5},
		maxLevels: map[int]int{7: 3, 8: 6, 9: 7, 10: 8, 11: 9, 12: 11, 13: 13, 14: 14},
		baseCost:  600000, baseTimeSeconds: 21600},
	{name: "X-Bow", category: CategoryBuilding, buildingType: BuildingDefense, unlockTH: 9,
		counts:    map[int]int{9: 2, 10: 3, 11: 4},
		maxLevels: map[int]int{9: 3, 10: 4, 11: 5, 12: 6, 13: 8, 14: 10},
		baseCost:  1000000, baseTimeSeconds: 43200},
	{name: "Inferno Tower", category: CategoryBuilding, buildingType: BuildingDefense, unlockTH: 10,
		counts:    map[int]int{10: 2, 13: 3},
		maxLevels: map[int]int{10: 3, 11: 5, 12: 6, 13: 8, 14: 9},
		baseCost:  2000000, baseTimeSeconds: 86400},
	{name: "Eagle Artillery", category: CategoryBuilding, buildingType: BuildingDefense, unlockTH: 11,
		counts:    map[int]int{11: 1},
		maxLevels: map[int]int{11: 2, 12: 3, 13: 4, 14: 5},
		baseCost:  6000000, baseTimeSeconds: 172800},
	{name: "Scattershot", category: CategoryBuilding, buildingType: BuildingDefense, unlockTH: 13,
		counts:    map[int]int{13: 2},
		maxLevels: map[int]int{13: 2, 14: 3},
		baseCost:  9000000, baseTimeSeconds: 259200},

	// =============================================
	// BUILDINGS - RESOURCE
	// =============================================
	{name: "Gold Mine", category: CategoryBuilding, buildingType: BuildingResource, unlockTH: 1,
		counts:    map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 6, 9: 7},
		maxLevels: map[int]int{1: 2, 2: 4, 3: 6, 4: 8, 5: 10, 6: 10, 7: 11, 8: 12, 9: 12, 10: 13, 11: 14, 12: 15, 14: 16},
		baseCost:  150, baseTimeSeconds: 60},
	{name: "Elixir Collector", category: CategoryBuilding, buildingType: BuildingResource, unlockTH: 1,
		counts:    map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 6, 9: 7},
		maxLevels: map[int]int{1: 2, 2: 4, 3: 6, 4: 8, 5: 10, 6: 10, 7: 11, 8: 12, 9: 12, 10: 13, 11: 14, 12: 15, 14: 16},
		baseCost:  150, baseTimeSeconds: 60},
	{name: "Gold Storage", category: CategoryBuilding, buildingType: BuildingResource, unlockTH: 1,
		counts:    map[int]int{1: 1, 3: 2, 4: 3, 6: 4},
		maxLevels: map[int]int{1: 1, 2: 3, 3: 6, 4: 8, 5: 9, 6: 10, 7: 11, 8: 11, 9: 12, 10: 12, 11: 13, 12: 14, 13: 15, 14: 16},
		baseCost:  300, baseTimeSeconds: 60},
	{name: "Elixir Storage", category: CategoryBuilding, buildingType: BuildingResource, unlockTH: 1,
		counts:    map[int]int{1: 1, 3: 2, 4: 3, 6: 4},
		maxLevels: map[int]int{1: 1, 2: 3, 3: 6, 4: 8, 5: 9, 6: 10, 7: 11, 8: 11, 9: 12, 10: 12, 11: 13, 12: 14, 13: 15, 14: 16},
		baseCost:  300, baseTimeSeconds: 60},
	{name: "Dark Elixir Drill", category: CategoryBuilding, buildingType: BuildingResource, unlockTH: 7,
		counts:    map[int]int{7: 1, 8: 2, 9: 3},
		maxLevels: map[int]int{7: 3, 8: 4, 9: 6, 10: 7, 12: 8, 13: 9},
		baseCost:  1000000, baseTimeSeconds: 43200},
	{name: "Dark Elixir Storage", category: CategoryBuilding, buildingType: BuildingResource, unlockTH: 7,
		counts:    map[int]int{7: 1},
		maxLevels: map[int]int{7: 2, 8: 4, 9: 6, 11: 7, 12: 8, 13: 9, 14: 10},
		baseCost:  600000, baseTimeSeconds: 36000},

	// =============================================
	// BUILDINGS - ARMY
	// =============================================
	{name: "Army Camp", category: CategoryBuilding, buildingType: BuildingArmy, unlockTH: 1,
		counts:    map[int]int{1: 1, 2: 2, 6: 3, 9: 4},
		maxLevels: map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5, 6: 6, 8: 7, 9: 8, 10: 9, 11: 10, 12: 11, 14: 12},
		baseCost:  250, baseTimeSeconds: 300},
	{name: "Barracks", category: CategoryBuilding, buildingType: BuildingArmy, unlockTH: 1,
		counts:    map[int]int{1: 1, 2: 2, 3: 3, 4: 4},
		maxLevels: map[int]int{1: 3, 2: 4, 3: 5, 4: 6, 5: 7, 6: 8, 7: 9, 8: 10, 9: 11, 10: 12, 11: 13, 12: 14, 13: 15, 14: 16},
		baseCost:  200, baseTimeSeconds: 60},
	{name: "Dark Barracks", category: CategoryBuilding, buildingType: BuildingArmy, unlockTH: 7,
		counts:    map[int]int{7: 1, 8: 2},
		maxLevels: map[int]int{7: 2, 8: 4, 9: 6, 10: 7, 11: 8, 12: 9, 13: 10},
		baseCost:  500000, baseTimeSeconds: 28800},
	{name: "Laboratory", category: CategoryBuilding, buildingType: BuildingArmy, unlockTH: 3,
		counts:    map[int]int{3: 1},
		maxLevels: map[int]int{3: 1, 4: 2, 5: 3, 6: 4, 7: 5, 8: 6, 9: 7, 10: 8, 11: 9, 12: 10, 13: 11, 14: 12},
		baseCost:  25000, baseTimeSeconds: 1800},
	{name: "Spell Factory", category: CategoryBuilding, buildingType: BuildingArmy, unlockTH: 5,
		counts:    map[int]int{5: 1},
		maxLevels: map[int]int{5: 1, 6: 2, 7: 3, 9: 4, 10: 5, 11: 6, 13: 7},
		baseCost:  150000, baseTimeSeconds: 14400},
	{name: "Dark Spell Factory", category: CategoryBuilding, buildingType: BuildingArmy, unlockTH: 8,
		counts:    map[int]int{8: 1},
		maxLevels: map[int]int{8: 2, 9: 3, 10: 4, 11: 5},
		baseCost:  600000, baseTimeSeconds: 28800},
	{name: "Workshop", category: CategoryBuilding, buildingType: BuildingArmy, unlockTH: 12,
		counts:    map[int]int{12: 1},
		maxLevels: map[int]int{12: 4, 13: 5, 14: 6},
		baseCost:  3000000, baseTimeSeconds: 86400},

	// =============================================
	// BUILDINGS - TRAPS & SPECIAL
	// =============================================
	{name: "Bomb", category: CategoryBuilding, buildingType: BuildingTrap, unlockTH: 3,
		counts:    map[int]int{3: 2, 5: 4, 7: 6},
		maxLevels: map[int]int{3: 2, 5: 3, 7: 5, 9: 6, 10: 7, 11: 8, 12: 9, 13: 10, 14: 11},
		baseCost:  400, baseTimeSeconds: 60},
	{name: "Spring Trap", category: CategoryBuilding, buildingType: BuildingTrap, unlockTH: 4,
		counts:    map[int]int{4: 2, 7: 4, 9: 6},
		maxLevels: map[int]int{4: 1, 7: 2, 8: 3, 9: 4, 10: 5},
		baseCost:  2000, baseTimeSeconds: 300},
	{name: "Air Bomb", category: CategoryBuilding, buildingType: BuildingTrap, unlockTH: 5,
		counts:    map[int]int{5: 2, 8: 4, 11: 5},
		maxLevels: map[int]int{5: 2, 7: 3, 9: 4, 11: 5, 12: 6, 13: 8, 14: 9},
		baseCost:  4000, baseTimeSeconds: 600},
	{name: "Seeking Air Mine", category: CategoryBuilding, buildingType: BuildingTrap, unlockTH: 7,
		counts:    map[int]int{7: 1, 9: 2, 10: 3, 11: 4},
		maxLevels: map[int]int{7: 1, 9: 2, 11: 3, 13: 4},
		baseCost:  8000, baseTimeSeconds: 600},
	{name: "Clan Castle", category: CategoryBuilding, buildingType: BuildingSpecial, unlockTH: 3,
		counts:    map[int]int{3: 1},
		maxLevels: map[int]int{3: 2, 4: 2, 5: 3, 6: 3, 8: 4, 9: 5, 10: 6, 11: 7, 12: 8, 13: 9, 14: 10},
		baseCost:  10000, baseTimeSeconds: 3600},

	// =============================================
	// HEROES
	// =============================================
	{name: "Barbarian King", category: CategoryHero, unlockTH: 7,
		maxLevels: map[int]int{7: 10, 8: 20, 9: 30, 10: 40, 11: 50, 12: 65, 13: 75, 14: 80},
		baseCost:  5000, baseTimeSeconds: 43200},
	{name: "Archer Queen", category: CategoryHero, unlockTH: 9,
		maxLevels: map[int]int{9: 30, 10: 40, 11: 50, 12: 65, 13: 75, 14: 80},
		baseCost:  10000, baseTimeSeconds: 43200},
	{name: "Grand Warden", category: CategoryHero, unlockTH: 11,
		maxLevels: map[int]int{11: 20, 12: 40, 13: 50, 14: 55},
		baseCost:  1000000, baseTimeSeconds: 86400},
	{name: "Royal Champion", category: CategoryHero, unlockTH: 13,
		maxLevels: map[int]int{13: 25, 14: 30},
		baseCost:  2000000, baseTimeSeconds: 86400},

	// =============================================
	// TROOPS
	// =============================================
	{name: "Barbarian", category: CategoryTroop, unlockTH: 1, housingSpace: 1,
		maxLevels: map[int]int{1: 1, 3: 2, 4: 3, 5: 4, 6: 5, 7: 6, 8: 7, 10: 8, 11: 9, 12: 10, 14: 11},
		baseCost:  50, baseTimeSeconds: 300},
	{name: "Archer", category: CategoryTroop, unlockTH: 1, housingSpace: 1,
		maxLevels: map[int]int{1: 1, 3: 2, 4: 3, 5: 4, 6: 5, 7: 6, 8: 7, 10: 8, 11: 9, 12: 10, 14: 11},
		baseCost:  250, baseTimeSeconds: 600},
	{name: "Giant", category: CategoryTroop, unlockTH: 1, housingSpace: 5,
		maxLevels: map[int]int{1: 1, 3: 2, 4: 3, 5: 4, 6: 5, 7: 6, 8: 7, 9: 8, 10: 9, 11: 10, 12: 11, 14: 12},
		baseCost:  1000, baseTimeSeconds: 1800},
	{name: "Goblin", category: CategoryTroop, unlockTH: 2, housingSpace: 1,
		maxLevels: map[int]int{2: 1, 3: 2, 4: 3, 5: 4, 6: 5, 8: 6, 9: 7, 12: 8},
		baseCost:  500, baseTimeSeconds: 900},
	{name: "Wall Breaker", category: CategoryTroop, unlockTH: 3, housingSpace: 2,
		maxLevels: map[int]int{3: 1, 4: 2, 5: 3, 6: 4, 8: 5, 9: 6, 10: 7, 11: 8, 12: 9, 13: 10, 14: 11},
		baseCost:  2000, baseTimeSeconds: 2700},
	{name: "Balloon", category: CategoryTroop, unlockTH: 4, housingSpace: 5,
		maxLevels: map[int]int{4: 2, 5: 3, 6: 4, 7: 5, 8: 6, 10: 7, 11: 8, 12: 9, 14: 10},
		baseCost:  3000, baseTimeSeconds: 3600},
	{name: "Wizard", category: CategoryTroop, unlockTH: 5, housingSpace: 4,
		maxLevels: map[int]int{5: 2, 6: 3, 7: 4, 8: 5, 9: 6, 10: 7, 11: 8, 12: 9, 13: 10, 14: 11},
		baseCost:  4000, baseTimeSeconds: 4800},
	{name: "Healer", category: CategoryTroop, unlockTH: 6, housingSpace: 14,
		maxLevels: map[int]int{6: 2, 7: 3, 8: 4, 11: 5, 13: 6, 14: 7},
		baseCost:  10000, baseTimeSeconds: 7200},
	{name: "Dragon", category: CategoryTroop, unlockTH: 7, housingSpace: 20,
		maxLevels: map[int]int{7: 2, 8: 3, 9: 4, 10: 5, 11: 6, 12: 7, 13: 8, 14: 9},
		baseCost:  25000, baseTimeSeconds: 14400},
	{name: "P.E.K.K.A", category: CategoryTroop, unlockTH: 8, housingSpace: 25,
		maxLevels: map[int]int{8: 3, 9: 4, 10: 6, 11: 7, 12: 8, 13: 9},
		baseCost:  40000, baseTimeSeconds: 21600},
	{name: "Minion", category: CategoryTroop, unlockTH: 7, housingSpace: 2,
		maxLevels: map[int]int{7: 2, 8: 4, 9: 5, 10: 6, 11: 7, 12: 8, 13: 9, 14: 10},
		baseCost:  10000, baseTimeSeconds: 14400},
	{name: "Hog Rider", category: CategoryTroop, unlockTH: 7, housingSpace: 5,
		maxLevels: map[int]int{7: 2, 8: 4, 9: 5, 10: 6, 11: 7, 12: 9, 13: 10, 14: 11},
		baseCost:  20000, baseTimeSeconds: 18000},
	{name: "Valkyrie", category: CategoryTroop, unlockTH: 8, housingSpace: 8,
		maxLevels: map[int]int{8: 2, 9: 4, 10: 5, 11: 6, 12: 7, 13: 8, 14: 9},
		baseCost:  40000, baseTimeSeconds: 21600},
	{name: "Golem", category: CategoryTroop, unlockTH: 8, housingSpace: 30,
		maxLevels: map[int]int{8: 2, 9: 4, 10: 5, 11: 7, 12: 9, 13: 10, 14: 11},
		baseCost:  60000, baseTimeSeconds: 28800},
	{name: "Witch", category: CategoryTroop, unlockTH: 9, housingSpace: 12,
		maxLevels: map[int]int{9: 2, 10: 3, 11: 4, 12: 5, 14: 6},
		baseCost:  75000, baseTimeSeconds: 36000},
	{name: "Lava Hound", category: CategoryTroop, unlockTH: 9, housingSpace: 30,
		maxLevels: map[int]int{9: 2, 10: 3, 11: 4, 12: 5, 13: 6},
		baseCost:  90000, baseTimeSeconds: 36000},
	{name: "Electro Dragon", category: CategoryTroop, unlockTH: 11, housingSpace: 30,
		maxLevels: map[int]int{11: 2, 12: 3, 13: 4, 14: 5},
		baseCost:  300000, baseTimeSeconds: 57600},
	{name: "Yeti", category: CategoryTroop, unlockTH: 12, housingSpace: 18,
		maxLevels: map[int]int{12: 2, 13: 3, 14: 4},
		baseCost:  400000, baseTimeSeconds: 57600},

	// =============================================
	// SPELLS
	// =============================================
	{name: "Lightning Spell", category: CategorySpell, unlockTH: 5, housingSpace: 1,
		maxLevels: map[int]int{5: 4, 8: 5, 9: 6, 10: 7, 11: 8, 12: 9},
		baseCost:  10000, baseTimeSeconds: 7200},
	{name: "Healing Spell", category: CategorySpell, unlockTH: 6, housingSpace: 2,
		maxLevels: map[int]int{6: 3, 7: 4, 8: 5, 9: 6, 10: 7, 13: 8},
		baseCost:  15000, baseTimeSeconds: 10800},
	{name: "Rage Spell", category: CategorySpell, unlockTH: 7, housingSpace: 2,
		maxLevels: map[int]int{7: 4, 8: 5, 10: 6},
		baseCost:  30000, baseTimeSeconds: 14400},
	{name: "Jump Spell", category: CategorySpell, unlockTH: 9, housingSpace: 2,
		maxLevels: map[int]int{9: 2, 10: 3, 13: 4},
		baseCost:  60000, baseTimeSeconds: 21600},
	{name: "Freeze Spell", category: CategorySpell, unlockTH: 9, housingSpace: 1,
		maxLevels: map[int]int{9: 2, 10: 5, 11: 6, 12: 7},
		baseCost:  60000, baseTimeSeconds: 21600},
	{name: "Poison Spell", category: CategorySpell, unlockTH: 8, housingSpace: 1,
		maxLevels: map[int]int{8: 2, 9: 3, 10: 4, 11: 5, 12: 6, 13: 7, 14: 8},
		baseCost:  25000, baseTimeSeconds: 14400},
	{name: "Earthquake Spell", category: CategorySpell, unlockTH: 8, housingSpace: 1,
		maxLevels: map[int]int{8: 2, 9: 3, 10: 4, 11: 5},
		baseCost:  30000, baseTimeSeconds: 14400},
	{name: "Haste Spell", category: CategorySpell, unlockTH: 9, housingSpace: 1,
		maxLevels: map[int]int{9: 2, 10: 4, 11: 5},
		baseCost:  40000, baseTimeSeconds: 18000},
	{name: "Clone Spell", category: CategorySpell, unlockTH: 10, housingSpace: 3,
		maxLevels: map[int]int{10: 3, 11: 5, 12: 6, 13: 7, 14: 8},
		baseCost:  100000, baseTimeSeconds: 28800},
	{name: "Invisibility Spell", category: CategorySpell, unlockTH: 11, housingSpace: 1,
		maxLevels: map[int]int{11: 2, 12: 3, 13: 4},
		baseCost:  200000, baseTimeSeconds: 36000},

	// =============================================
	// SIEGE MACHINES
	// =============================================
	{name: "Wall Wrecker", category: CategorySiege, unlockTH: 12,
		maxLevels: map[int]int{12: 3, 13: 4, 14: 5},
		baseCost:  1000000, baseTimeSeconds: 57600},
	{name: "Battle Blimp", category: CategorySiege, unlockTH: 12,
		maxLevels: map[int]int{12: 3, 13: 4},
		baseCost:  1500000, baseTimeSeconds: 57600},
	{name: "Stone Slammer", category: CategorySiege, unlockTH: 12,
		maxLevels: map[int]int{12: 3, 13: 4, 14: 5},
		baseCost:  2000000, baseTimeSeconds: 57600},
	{name: "Siege Barracks", category: CategorySiege, unlockTH: 13,
		maxLevels: map[int]int{13: 4, 14: 5},
		baseCost:  3000000, baseTimeSeconds: 86400},
	{name: "Log Launcher", category: CategorySiege, unlockTH: 13,
		maxLevels: map[int]int{13: 4, 14: 5},
		baseCost:  3500000, baseTimeSeconds: 86400},

	// =============================================
	// PETS
	// =============================================
	{name: "L.A.S.S.I", category: CategoryPet, unlockTH: 14,
		maxLevels: map[int]int{14: 10},
		baseCost:  15000, baseTimeSeconds: 86400},
	{name: "Electro Owl", category: CategoryPet, unlockTH: 14,
		maxLevels: map[int]int{14: 10},
		baseCost:  25000, baseTimeSeconds: 86400},
	{name: "Mighty Yak", category: CategoryPet, unlockTH: 14,
		maxLevels: map[int]int{14: 10},
		baseCost:  50000, baseTimeSeconds: 86400},
	{name: "Unicorn", category: CategoryPet, unlockTH: 14,
		maxLevels: map[int]int{14: 10},
		baseCost:  75000, baseTimeSeconds: 86400},
}

// wallAllowances - total wall pieces and wall max level per town-hall level.
var wallAllowances = map[int]WallAllowance{
	2:  {Count: 25, MaxLevel: 2},
	3:  {Count: 50, MaxLevel: 3},
	4:  {Count: 75, MaxLevel: 4},
	5:  {Count: 100, MaxLevel: 5},
	6:  {Count: 125, MaxLevel: 6},
	7:  {Count: 175, MaxLevel: 7},
	8:  {Count: 225, MaxLevel: 8},
	9:  {Count: 250, MaxLevel: 10},
	10: {Count: 275, MaxLevel: 11},
	11: {Count: 300, MaxLevel: 12},
	12: {Count: 300, MaxLevel: 13},
	13: {Count: 325, MaxLevel: 14},
	14: {Count: 325, MaxLevel: 15},
}
