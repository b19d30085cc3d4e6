package seeders

import (
	"errors"

	"takvim.link/configs/configslog"
	"takvim.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDirectory varsayılan takım ve üyeleri ekler; mevcut kayıtlara dokunmaz.
func SeedDirectory(db *gorm.DB) error {
	var createdCount int64
	errorOccurred := false

	configslog.SLog.Info("Takım ve üye seed işlemi başlıyor...")

	for _, team := range models.DefaultTeams() {
		created, err := createIfMissing(db, &models.Team{}, team.ID, &team)
		if err != nil {
			configslog.Log.Error("Takım oluşturulamadı", zap.String("team_id", team.ID), zap.Error(err))
			errorOccurred = true
			continue
		}
		if created {
			createdCount++
		}
	}

	for _, member := range models.DefaultMembers() {
		created, err := createIfMissing(db, &models.Member{}, member.ID, &member)
		if err != nil {
			configslog.Log.Error("Üye oluşturulamadı", zap.String("member_id", member.ID), zap.Error(err))
			errorOccurred = true
			continue
		}
		if created {
			createdCount++
		}
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d adet yeni takım/üye kaydı seed edildi.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("Tüm takım ve üyeler zaten mevcut, yeni ekleme yapılmadı.")
	}

	if errorOccurred {
		return errors.New("takım/üye seed edilirken en az bir hata oluştu")
	}
	return nil
}

func createIfMissing(db *gorm.DB, probe interface{}, id string, value interface{}) (bool, error) {
	result := db.Where("id = ?", id).First(probe)
	if result.Error == nil {
		configslog.SLog.Debugf("Kayıt '%s' zaten mevcut, oluşturma atlanıyor.", id)
		return false, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, result.Error
	}
	if err := db.Create(value).Error; err != nil {
		return false, err
	}
	return true, nil
}
