package bootstrap

import (
	"context"
	"fmt"

	"itdocsapi/config"
	"itdocsapi/models"
	"itdocsapi/pkg/logger"
	"itdocsapi/schema"

	"gorm.io/gorm"
)

// AdminSeeder creates the initial administrator account.
type AdminSeeder interface {
	EnsureAdmin(ctx context.Context, username, password, email string) error
}

// LoadData validates the entity registry, migrates the database and seeds the
// administrator account when ADMIN_PASSWORD is set.
func LoadData(db *gorm.DB, reg *schema.Registry, seeder AdminSeeder) error {
	logger.Infof("Starting bootstrap data loading...")

	if err := reg.Validate(); err != nil {
		logger.Errorf("Entity registry is invalid: %v", err)
		return fmt.Errorf("failed to validate entity registry: %w", err)
	}
	logger.Infof("Validated %d registered entities", len(reg.Entities()))

	if err := Migrate(db, reg); err != nil {
		return err
	}
	if err := seedAdmin(seeder); err != nil {
		return err
	}

	logger.Infof("Bootstrap data loading completed successfully")
	return nil
}

// Migrate creates or updates the tables of every registered entity and of the
// account models.
func Migrate(db *gorm.DB, reg *schema.Registry) error {
	migrations := append(reg.Models(), &models.Account{}, &models.AccountGroup{})
	if err := db.AutoMigrate(migrations...); err != nil {
		logger.Errorf("Failed to migrate database: %v", err)
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Infof("Migrated %d tables", len(migrations))
	return nil
}

func seedAdmin(seeder AdminSeeder) error {
	c := config.Cfg
	if c.AdminPassword == "" {
		logger.Infof("ADMIN_PASSWORD is not set, skipping admin account seeding")
		return nil
	}
	if err := seeder.EnsureAdmin(context.Background(), c.AdminUsername, c.AdminPassword, c.AdminEmail); err != nil {
		logger.Errorf("Failed to seed admin account %s: %v", c.AdminUsername, err)
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	logger.Infof("Admin account %s is available", c.AdminUsername)
	return nil
}
