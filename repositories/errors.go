package repositories

import (
	"errors"
	"time"

	"takvim.link/models"
)

var (
	ErrNotFound         = errors.New("kayıt bulunamadı")
	ErrAlreadyDeleted   = errors.New("kayıt zaten silinmiş")
	ErrNotDeleted       = errors.New("kayıt silinmiş değil")
	ErrRetentionExpired = errors.New("kurtarma süresi dolmuş")
)

// checkRecoverable kurtarma koşulunu tüm depolar için tek yerde tutar:
// kayıt silinmiş olmalı ve silinme üzerinden en fazla RetentionWindow geçmiş olmalı.
func checkRecoverable(e *models.Event, now time.Time) error {
	if !e.IsDeleted || e.DeletedAt == nil {
		return ErrNotDeleted
	}
	if now.Sub(*e.DeletedAt) > models.RetentionWindow {
		return ErrRetentionExpired
	}
	return nil
}

// purgeCutoff bu andan önce silinmiş kayıtlar kalıcı olarak silinir.
func purgeCutoff(now time.Time, window time.Duration) time.Time {
	return now.Add(-window)
}
