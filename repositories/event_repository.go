package repositories

import (
	"context"
	"errors"
	"time"

	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IEventRepository etkinlik deposu. Tüm işlemler tek belge üzerinde atomiktir.
type IEventRepository interface {
	// Create kimlik ve createdAt atar, kaydı saklar.
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	// FindByID silinmiş kayıtları da döndürür; canlılık kontrolü çağırana aittir.
	FindByID(ctx context.Context, id string) (*models.Event, error)
	// ListActive silinmemiş kayıtları createdAt azalan sırada döndürür.
	ListActive(ctx context.Context) ([]*models.Event, error)
	// ListDeletedWithin deletedAt >= now-window olan silinmiş kayıtları deletedAt azalan sırada döndürür.
	ListDeletedWithin(ctx context.Context, window time.Duration) ([]*models.Event, error)
	// Update yamayı canlı kayda uygular; kayıt yoksa veya silinmişse ErrNotFound.
	Update(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error)
	SoftDelete(ctx context.Context, id string) (*models.Event, error)
	// Recover models.RetentionWindow içinde silinmiş kaydı geri getirir.
	Recover(ctx context.Context, id string) (*models.Event, error)
	// PurgeExpired deletedAt < now-window olan silinmiş kayıtları kalıcı siler.
	PurgeExpired(ctx context.Context, window time.Duration) (int64, error)
}

// EventRepository IEventRepository arayüzünün gorm/postgres uygulaması.
type EventRepository struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewEventRepository yeni bir EventRepository örneği oluşturur.
func NewEventRepository(db *gorm.DB, clk clock.Clock) IEventRepository {
	if clk == nil {
		clk = clock.Real{}
	}
	return &EventRepository{db: db, clock: clk}
}

func (r *EventRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event == nil {
		return nil, errors.New("boş etkinlik kaydedilemez")
	}
	stored := event.Clone()
	stored.ID = uuid.NewString()
	stored.CreatedAt = r.clock.Now().UTC()
	stored.IsDeleted = false
	stored.DeletedAt = nil

	if err := r.getDB(ctx).Create(models.NewEventRecord(stored)).Error; err != nil {
		configslog.Log.Error("EventRepository.Create: DB error", zap.String("title", stored.Title), zap.Error(err))
		return nil, err
	}
	return stored, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var record models.EventRecord
	err := r.getDB(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByID: DB error", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return record.ToEvent(), nil
}

func (r *EventRepository) ListActive(ctx context.Context) ([]*models.Event, error) {
	var records []models.EventRecord
	err := r.getDB(ctx).Where("is_deleted = ?", false).Order("created_at desc").Find(&records).Error
	if err != nil {
		configslog.Log.Error("EventRepository.ListActive: DB error", zap.Error(err))
		return nil, err
	}
	return recordsToEvents(records), nil
}

func (r *EventRepository) ListDeletedWithin(ctx context.Context, window time.Duration) ([]*models.Event, error) {
	since := r.clock.Now().UTC().Add(-window)
	var records []models.EventRecord
	err := r.getDB(ctx).
		Where("is_deleted = ? AND deleted_at >= ?", true, since).
		Order("deleted_at desc").
		Find(&records).Error
	if err != nil {
		configslog.Log.Error("EventRepository.ListDeletedWithin: DB error", zap.Duration("window", window), zap.Error(err))
		return nil, err
	}
	return recordsToEvents(records), nil
}

// lockRecord satırı işlem sonuna kadar kilitler (SELECT ... FOR UPDATE).
func lockRecord(tx *gorm.DB, id string) (*models.EventRecord, error) {
	var record models.EventRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, patch models.EventPatch) (*models.Event, error) {
	var updated *models.Event
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := lockRecord(tx, id)
		if err != nil {
			return err
		}
		if record.IsDeleted {
			return ErrNotFound
		}
		event := record.ToEvent()
		patch.ApplyTo(event)
		if err := tx.Save(models.NewEventRecord(event)).Error; err != nil {
			return err
		}
		updated = event
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			configslog.Log.Error("EventRepository.Update: DB error", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

func (r *EventRepository) SoftDelete(ctx context.Context, id string) (*models.Event, error) {
	var deleted *models.Event
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		now := r.clock.Now().UTC()
		updateData := map[string]interface{}{"is_deleted": true, "deleted_at": now}
		result := tx.Model(&models.EventRecord{}).Where("id = ? AND is_deleted = ?", id, false).Updates(updateData)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.EventRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrAlreadyDeleted
		}
		var record models.EventRecord
		if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
			return err
		}
		deleted = record.ToEvent()
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrAlreadyDeleted) {
			configslog.Log.Error("EventRepository.SoftDelete: DB error", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return deleted, nil
}

func (r *EventRepository) Recover(ctx context.Context, id string) (*models.Event, error) {
	var recovered *models.Event
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := lockRecord(tx, id)
		if err != nil {
			return err
		}
		event := record.ToEvent()
		if err := checkRecoverable(event, r.clock.Now().UTC()); err != nil {
			return err
		}
		updateData := map[string]interface{}{"is_deleted": false, "deleted_at": nil}
		if err := tx.Model(&models.EventRecord{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
			return err
		}
		event.IsDeleted = false
		event.DeletedAt = nil
		recovered = event
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotDeleted), errors.Is(err, ErrRetentionExpired):
		default:
			configslog.Log.Error("EventRepository.Recover: DB error", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return recovered, nil
}

func (r *EventRepository) PurgeExpired(ctx context.Context, window time.Duration) (int64, error) {
	cutoff := purgeCutoff(r.clock.Now().UTC(), window)
	result := r.getDB(ctx).
		Where("is_deleted = ? AND deleted_at < ?", true, cutoff).
		Delete(&models.EventRecord{})
	if result.Error != nil {
		configslog.Log.Error("EventRepository.PurgeExpired: DB error", zap.Time("cutoff", cutoff), zap.Error(result.Error))
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func recordsToEvents(records []models.EventRecord) []*models.Event {
	events := make([]*models.Event, 0, len(records))
	for i := range records {
		events = append(events, records[i].ToEvent())
	}
	return events
}

// Arayüz uyumluluğu kontrolü
var _ IEventRepository = (*EventRepository)(nil)
