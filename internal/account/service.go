package account

import (
	"errors"
	"log"

	"townkeeper/internal/catalog"
	"townkeeper/internal/common"
	"townkeeper/internal/upgrade"
	"townkeeper/internal/wall"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =============================================
// 1. SERVICE STRUCTURE
// =============================================

type Service struct {
	db    *gorm.DB
	walls *wall.Service
}

func NewService(db *gorm.DB, walls *wall.Service) *Service {
	return &Service{db: db, walls: walls}
}

// =============================================
// 2. PROVISIONING
// =============================================

// Provision creates a fresh account at the given town-hall level together
// with its full starter entity set and wall ledger, all-or-nothing.
func (s *Service) Provision(userID uuid.UUID, req *CreateAccountRequest) (*ProvisionResult, error) {
	if req.TownHallLevel < catalog.MinTownHall || req.TownHallLevel > catalog.MaxTownHall {
		return nil, common.Validationf("town hall level %d out of range (%d-%d)",
			req.TownHallLevel, catalog.MinTownHall, catalog.MaxTownHall)
	}

	var result *ProvisionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		acc := &Account{
			UserID:        userID,
			Name:          req.Name,
			TownHallLevel: req.TownHallLevel,
		}
		acc.ID = uuid.New()
		if err := tx.Create(acc).Error; err != nil {
			return common.Internal("failed to create account", err)
		}

		entities := buildStarterEntities(acc.ID, req.TownHallLevel, nil)
		if len(entities) > 0 {
			if err := tx.Create(&entities).Error; err != nil {
				return common.Internal("failed to create entities", err)
			}
		}

		group := wall.NewGroup(acc.ID, req.TownHallLevel)
		if group != nil {
			if err := tx.Create(group).Error; err != nil {
				return common.Internal("failed to create wall group", err)
			}
		}

		result = &ProvisionResult{Account: acc, Entities: entities, WallGroup: group}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🏰 Provisioned account %s (TH%d) with %d entities", result.Account.ID, req.TownHallLevel, len(result.Entities))
	return result, nil
}

// Import provisions an account seeded from an external profile snapshot.
// Levels are clamped to the catalog ceilings; unknown snapshot entries are
// ignored.
func (s *Service) Import(userID uuid.UUID, spec *ImportSpec) (*ProvisionResult, error) {
	if spec.TownHallLevel < catalog.MinTownHall || spec.TownHallLevel > catalog.MaxTownHall {
		return nil, common.Validationf("town hall level %d out of range (%d-%d)",
			spec.TownHallLevel, catalog.MinTownHall, catalog.MaxTownHall)
	}
	if spec.Name == "" {
		return nil, common.Validationf("account name is required")
	}

	var result *ProvisionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		acc := &Account{
			UserID:        userID,
			Name:          spec.Name,
			TownHallLevel: spec.TownHallLevel,
		}
		if spec.Tag != "" {
			tag := spec.Tag
			acc.Tag = &tag
		}
		acc.ID = uuid.New()
		if err := tx.Create(acc).Error; err != nil {
			return common.Internal("failed to create account", err)
		}

		entities := buildStarterEntities(acc.ID, spec.TownHallLevel, spec.Entities)
		if len(entities) > 0 {
			if err := tx.Create(&entities).Error; err != nil {
				return common.Internal("failed to create entities", err)
			}
		}

		group := wall.NewGroupFromBuckets(acc.ID, spec.TownHallLevel, spec.Walls)
		if group != nil {
			if err := tx.Create(group).Error; err != nil {
				return common.Internal("failed to create wall group", err)
			}
		}

		result = &ProvisionResult{Account: acc, Entities: entities, WallGroup: group}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📥 Imported account %s (%s, TH%d)", result.Account.ID, spec.Name, spec.TownHallLevel)
	return result, nil
}

// buildStarterEntities expands the catalog templates into entity rows.
// Seeded levels, when present, are consumed per instance in order and
// clamped to the template ceiling.
func buildStarterEntities(accountID uuid.UUID, townHallLevel int, seeds []ImportEntity) []upgrade.Entity {
	seedQueues := map[string][]int{}
	for _, seed := range seeds {
		key := string(seed.Category) + "/" + catalog.NormalizeKey(seed.Name)
		seedQueues[key] = append(seedQueues[key], seed.Level)
	}

	entities := []upgrade.Entity{}
	for _, tpl := range catalog.TemplatesFor(townHallLevel) {
		key := string(tpl.Category) + "/" + catalog.NormalizeKey(tpl.Name)
		for i := 0; i < tpl.Count; i++ {
			level := 0
			if queue := seedQueues[key]; len(queue) > 0 {
				level = queue[0]
				seedQueues[key] = queue[1:]
				if level < 0 {
					level = 0
				}
				if level > tpl.MaxLevel {
					level = tpl.MaxLevel
				}
			}

			entity := upgrade.Entity{
				AccountID:    accountID,
				Name:         tpl.Name,
				Category:     tpl.Category,
				BuildingType: tpl.BuildingType,
				CurrentLevel: level,
				MaxLevel:     tpl.MaxLevel,
				Status:       upgrade.StatusIdle,
				HousingSpace: tpl.HousingSpace,
			}
			entity.ID = uuid.New()
			entities = append(entities, entity)
		}
	}
	return entities
}

// =============================================
// 3. ACCOUNT CRUD
// =============================================

// List returns the user's accounts.
func (s *Service) List(userID uuid.UUID) ([]Account, error) {
	var accounts []Account
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&accounts).Error; err != nil {
		return nil, common.Internal("failed to list accounts", err)
	}
	return accounts, nil
}

// Get returns one owned account.
func (s *Service) Get(userID, accountID uuid.UUID) (*Account, error) {
	var acc Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundf("account not found")
		}
		return nil, common.Internal("failed to get account", err)
	}
	return &acc, nil
}

// Delete removes an account with everything it owns: entities and the wall
// group go in the same transaction.
func (s *Service) Delete(userID, accountID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var acc Account
		if err := tx.Where("id = ? AND user_id = ?", accountID, userID).First(&acc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NotFoundf("account not found")
			}
			return common.Internal("failed to get account", err)
		}

		if err := tx.Delete(&upgrade.Entity{}, "account_id = ?", accountID).Error; err != nil {
			return common.Internal("failed to delete entities", err)
		}
		if err := tx.Delete(&wall.Group{}, "account_id = ?", accountID).Error; err != nil {
			return common.Internal("failed to delete wall group", err)
		}
		if err := tx.Delete(&Account{}, "id = ?", accountID).Error; err != nil {
			return common.Internal("failed to delete account", err)
		}
		return nil
	})
}

// ListEntities returns all entities of an owned account.
func (s *Service) ListEntities(userID, accountID uuid.UUID) ([]upgrade.Entity, error) {
	if _, err := s.Get(userID, accountID); err != nil {
		return nil, err
	}

	var entities []upgrade.Entity
	if err := s.db.Where("account_id = ?", accountID).Order("category, name").Find(&entities).Error; err != nil {
		return nil, common.Internal("failed to list entities", err)
	}
	return entities, nil
}

// =============================================
// 4. AGGREGATE STATS
// =============================================

// GetStats assembles the full roll-up for one account. Wall stats go through
// the wall service, so a missing ledger is lazily created here as well.
func (s *Service) GetStats(userID, accountID uuid.UUID) (*AccountStats, error) {
	acc, err := s.Get(userID, accountID)
	if err != nil {
		return nil, err
	}

	var entities []upgrade.Entity
	if err := s.db.Where("account_id = ?", accountID).Find(&entities).Error; err != nil {
		return nil, common.Internal("failed to list entities", err)
	}

	stats := &AccountStats{
		Account:     acc,
		PerCategory: PerCategoryTotals(entities),
		Progress:    OverallProgress(entities),
	}

	group, err := s.walls.GetGroup(userID, accountID)
	if err != nil {
		// Town halls below the wall unlock legitimately have no ledger.
		if !common.IsKind(err, common.KindValidation) {
			return nil, err
		}
	} else {
		stats.WallProgress = WallProgress(group)
		stats.WallStats = &wall.Stats{
			Total:        group.Levels.Total(),
			Maxed:        group.Levels.MaxedCount(group.MaxLevel),
			TotalAllowed: group.TotalAllowed,
			MaxLevel:     group.MaxLevel,
			ByLevel:      group.Levels,
		}
	}

	return stats, nil
}
