package database

import (
	"townkeeper/internal/account"
	"townkeeper/internal/auth"
	"townkeeper/internal/upgrade"
	"townkeeper/internal/wall"

	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&auth.User{},
		&account.Account{},
		&upgrade.Entity{},
		&wall.Group{},
	)
	if err != nil {
		return err
	}

	if err := createAccountIndexes(db); err != nil {
		return err
	}

	return createEntityIndexes(db)
}

func createAccountIndexes(db *gorm.DB) error {
	// Index for accounts by owner
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_accounts_user_id
		ON accounts (user_id, created_at DESC)
	`).Error; err != nil {
		return err
	}

	// One wall group per account
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_wall_groups_account
		ON wall_groups (account_id)
	`).Error
}

func createEntityIndexes(db *gorm.DB) error {
	// Index for entities by account and category
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_entities_account_category
		ON entities (account_id, category)
	`).Error; err != nil {
		return err
	}

	// Index for the running-upgrade lookups
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_entities_account_status
		ON entities (account_id, status)
	`).Error
}
