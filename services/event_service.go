package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"takvim.link/configs/configslog"
	"takvim.link/models"
	"takvim.link/pkg/clock"
	"takvim.link/pkg/eventdiff"
	"takvim.link/pkg/icsexport"
	"takvim.link/pkg/recurrence"
	"takvim.link/repositories"

	"go.uber.org/zap"
)

// UpdateEventRequest güncelleme gövdesi: yama alanları ile updateType ve instanceDate.
type UpdateEventRequest struct {
	models.EventPatch
	UpdateType   string          `json:"updateType,omitempty"`
	InstanceDate *models.Instant `json:"instanceDate,omitempty"`
}

// UpdateResult güncellemenin sonucu. İstisna çatallanırsa Event yeni istisna kaydıdır.
type UpdateResult struct {
	Event                *models.Event   `json:"event"`
	Changes              []models.Change `json:"changes"`
	IsRecurringException bool            `json:"isRecurringException"`
}

// IEventService etkinlik yaşam döngüsü işlemleri için arayüz.
type IEventService interface {
	CreateEvent(ctx context.Context, input models.EventInput) (*models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*UpdateResult, error)
	DeleteEvent(ctx context.Context, id string) (*models.Event, error)
	ListDeletedEvents(ctx context.Context) ([]*models.Event, error)
	RecoverEvent(ctx context.Context, id string) (*models.Event, error)
	PurgeExpired(ctx context.Context) (int64, error)
	PurgeSweep(ctx context.Context) int64
	ExportICS(ctx context.Context) (string, error)
}

// EventService IEventService arayüzünü uygular.
type EventService struct {
	repo      repositories.IEventRepository
	directory repositories.IDirectoryRepository
	validator *EventValidator
	notifier  IEventNotifier
	clock     clock.Clock
}

type EventServiceOption func(*EventService)

func WithNotifier(n IEventNotifier) EventServiceOption {
	return func(s *EventService) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithClock(c clock.Clock) EventServiceOption {
	return func(s *EventService) {
		if c != nil {
			s.clock = c
		}
	}
}

// NewEventService yeni bir EventService örneği oluşturur.
func NewEventService(repo repositories.IEventRepository, directory repositories.IDirectoryRepository, opts ...EventServiceOption) *EventService {
	s := &EventService{
		repo:      repo,
		directory: directory,
		validator: NewEventValidator(directory),
		notifier:  NoopNotifier{},
		clock:     clock.Real{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EventService) CreateEvent(ctx context.Context, input models.EventInput) (*models.Event, error) {
	if err := s.validator.ValidateInput(ctx, input); err != nil {
		return nil, s.validationOrStorage("CreateEvent", "", err)
	}

	created, err := s.repo.Create(ctx, input.ToEvent())
	if err != nil {
		return nil, s.mapRepoError("CreateEvent", "", err)
	}

	configslog.SLog.Infof("Etkinlik oluşturuldu: %s (%q)", created.ID, created.Title)
	notify(ctx, s.notifier, RoutingEventCreated, map[string]interface{}{"event": created})
	return created, nil
}

// GetEvent canlı (silinmemiş) kaydı döndürür.
func (s *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetEvent", id, err)
	}
	if event.IsDeleted {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, s.mapRepoError("ListEvents", "", err)
	}
	return events, nil
}

// UpdateEvent yamayı seriye uygular ya da tek bir tekrar için istisna kaydı çatallar.
// Seri güncellemeleri daha önce oluşmuş istisnalara yansıtılmaz.
func (s *EventService) UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*UpdateResult, error) {
	original, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	updateType, err := models.ParseUpdateType(req.UpdateType)
	if err != nil {
		verr := &ValidationError{}
		verr.add("updateType", "must be one of: single, series")
		return nil, verr
	}

	if err := s.validator.ValidatePatch(ctx, req.EventPatch, original); err != nil {
		return nil, s.validationOrStorage("UpdateEvent", id, err)
	}

	changes := eventdiff.Diff(original, req.EventPatch)

	var result *UpdateResult
	if original.Recurring.Enabled && updateType == models.UpdateTypeSingle && req.InstanceDate != nil {
		exception, err := s.forkException(ctx, original, req.EventPatch, *req.InstanceDate)
		if err != nil {
			return nil, err
		}
		result = &UpdateResult{Event: exception, Changes: changes, IsRecurringException: true}
		configslog.SLog.Infof("Seri %s için %s tekrarına istisna oluşturuldu: %s", original.ID, req.InstanceDate.Format(time.RFC3339), exception.ID)
	} else {
		updated, err := s.repo.Update(ctx, id, req.EventPatch)
		if err != nil {
			return nil, s.mapRepoError("UpdateEvent", id, err)
		}
		result = &UpdateResult{Event: updated, Changes: changes, IsRecurringException: false}
		configslog.SLog.Infof("Etkinlik güncellendi: %s (%d değişiklik)", id, len(changes))
	}

	notify(ctx, s.notifier, RoutingEventUpdated, result)
	return result, nil
}

// forkException serinin o anki haline yamayı uygulayıp tek bir tekrarı ayrı kayıt olarak saklar.
func (s *EventService) forkException(ctx context.Context, series *models.Event, patch models.EventPatch, instance models.Instant) (*models.Event, error) {
	instance = models.NewInstant(instance.Time)
	ok, err := recurrence.SeriesContains(series, instance.Time)
	if err != nil || !ok {
		verr := &ValidationError{}
		verr.add("instanceDate", "is not an occurrence of the series")
		return nil, verr
	}

	exception := series.Clone()
	patch.ApplyTo(exception)
	// Bitiş verilmediyse tekrarın süresi yeni başlangıçtan korunur.
	if patch.StartDate == nil {
		exception.StartDate = instance
	}
	if patch.EndDate == nil {
		exception.EndDate = models.NewInstant(exception.StartDate.Add(series.Duration()))
	}
	exception.ParentEventID = series.ID
	exception.InstanceDate = &instance
	exception.IsException = true
	exception.Recurring = models.Recurring{Enabled: false}

	created, err := s.repo.Create(ctx, exception)
	if err != nil {
		return nil, s.mapRepoError("UpdateEvent", series.ID, err)
	}
	return created, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) (*models.Event, error) {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("DeleteEvent", id, err)
	}
	configslog.SLog.Infof("Etkinlik silindi (soft delete): %s", id)
	notify(ctx, s.notifier, RoutingEventDeleted, map[string]interface{}{"event": deleted})
	return deleted, nil
}

// ListDeletedEvents kurtarılabilir (RetentionWindow içinde silinmiş) kayıtları döndürür.
func (s *EventService) ListDeletedEvents(ctx context.Context) ([]*models.Event, error) {
	events, err := s.repo.ListDeletedWithin(ctx, models.RetentionWindow)
	if err != nil {
		return nil, s.mapRepoError("ListDeletedEvents", "", err)
	}
	return events, nil
}

func (s *EventService) RecoverEvent(ctx context.Context, id string) (*models.Event, error) {
	recovered, err := s.repo.Recover(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("RecoverEvent", id, err)
	}
	configslog.SLog.Infof("Etkinlik kurtarıldı: %s", id)
	notify(ctx, s.notifier, RoutingEventRecovered, map[string]interface{}{"event": recovered})
	return recovered, nil
}

func (s *EventService) PurgeExpired(ctx context.Context) (int64, error) {
	count, err := s.repo.PurgeExpired(ctx, models.RetentionWindow)
	if err != nil {
		return 0, s.mapRepoError("PurgeExpired", "", err)
	}
	return count, nil
}

// PurgeSweep zamanlayıcıdan çağrılır; hata döndürmez, yalnızca loglar.
func (s *EventService) PurgeSweep(ctx context.Context) int64 {
	count, err := s.PurgeExpired(ctx)
	if err != nil {
		configslog.Log.Error("Temizlik turu başarısız, bir sonraki turda tekrar denenecek", zap.Error(err))
		return 0
	}
	if count > 0 {
		configslog.SLog.Infof("Temizlik turu: %d kalıcı olarak silindi", count)
		notify(ctx, s.notifier, RoutingEventsPurged, map[string]interface{}{"count": count, "purgedAt": s.clock.Now().UTC()})
	} else {
		configslog.SLog.Debug("Temizlik turu: silinecek kayıt yok")
	}
	return count
}

// ExportICS aktif etkinlikleri iCalendar akışı olarak döndürür.
func (s *EventService) ExportICS(ctx context.Context) (string, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return "", err
	}

	members := map[string]models.Member{}
	if s.directory != nil {
		list, err := s.directory.ListMembers(ctx)
		if err != nil {
			return "", s.mapRepoError("ExportICS", "", err)
		}
		for _, m := range list {
			members[m.ID] = m
		}
	}

	return icsexport.Render(events, icsexport.Options{
		Now: s.clock.Now(),
		Members: func(id string) (models.Member, bool) {
			m, ok := members[id]
			return m, ok
		},
	}), nil
}

func (s *EventService) validationOrStorage(op, id string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return s.mapRepoError(op, id, err)
}

// mapRepoError depo hatalarını servis hatalarına çevirir; bilinmeyenleri loglayıp ErrStorageFailure ile sarar.
func (s *EventService) mapRepoError(op, id string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrEventNotFound
	case errors.Is(err, repositories.ErrAlreadyDeleted):
		return ErrEventAlreadyDeleted
	case errors.Is(err, repositories.ErrNotDeleted):
		return ErrEventNotDeleted
	case errors.Is(err, repositories.ErrRetentionExpired):
		return ErrRetentionExpired
	}
	configslog.Log.Error("Depolama hatası", zap.String("op", op), zap.String("id", id), zap.Error(err))
	return fmt.Errorf("%w: %w", ErrStorageFailure, err)
}

var _ IEventService = (*EventService)(nil)
