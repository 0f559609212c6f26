package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/randevu-app/randevu-server/internal/config"
)

// NewDB initializes the database connection using DSN from config.
//
// TranslateError is on so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of driver; the interaction paths rely on
// that to turn insert conflicts into idempotent no-ops.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(cfg.DB.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	return database, nil
}

// Migrate ensures the schema is in sync with the models.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&User{}, &Like{}, &Favorite{}, &Match{}, &ProfileView{}, &Message{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
