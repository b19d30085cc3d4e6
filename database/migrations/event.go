package migrations

import (
	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateEventsTable events tablosunu ve silinme/seri indekslerini oluşturur.
func MigrateEventsTable(db *gorm.DB) error {
	configslog.SLog.Info("Events tablosu migrate ediliyor...")

	if err := db.AutoMigrate(&models.EventRecord{}); err != nil {
		configslog.Log.Error("Events tablosu migrate edilemedi", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Events tablosu migrate işlemi tamamlandı.")
	return nil
}
