package initialize

import (
	"intranet/config"
	"intranet/internal/logger"
	. "intranet/internal/models"

	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Migrating database tables")

	if err := db.AutoMigrate(
		&Member{},
		&TrainingRecord{},
		&TrainingRequirement{},
	); err != nil {
		return log.Err("failed to migrate tables", err)
	}

	log.Info("Table initialization complete")
	return nil
}
