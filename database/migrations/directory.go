package migrations

import (
	"errors"

	"takvim.link/configs/configslog"
	"takvim.link/models"

	"gorm.io/gorm"
)

func MigrateDirectoryTables(db *gorm.DB) error {
	configslog.SLog.Info("Teams ve members tabloları migrate ediliyor...")

	if err := db.AutoMigrate(&models.Team{}, &models.Member{}); err != nil {
		errMsg := "Teams/members tabloları migrate edilemedi: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}

	configslog.SLog.Info("Teams ve members tabloları migrate işlemi tamamlandı.")
	return nil
}
