package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// EventRecord events tablosunun gorm modeli. Alt belgeler jsonb sütunlarda tutulur.
type EventRecord struct {
	ID            string                            `gorm:"type:varchar(36);primaryKey"`
	Title         string                            `gorm:"type:varchar(255);not null"`
	Description   string                            `gorm:"type:text;not null"`
	StartDate     time.Time                         `gorm:"not null"`
	EndDate       time.Time                         `gorm:"not null"`
	Timezone      string                            `gorm:"type:varchar(64);not null"`
	Location      datatypes.JSON                    `gorm:"type:jsonb"`
	Team          string                            `gorm:"type:varchar(32);index"`
	Guests        datatypes.JSONSlice[Guest]        `gorm:"type:jsonb;not null"`
	Recurring     datatypes.JSONType[Recurring]     `gorm:"type:jsonb;not null"`
	RSVPRequired  bool                              `gorm:"not null;default:false"`
	Notifications datatypes.JSONType[Notifications] `gorm:"type:jsonb;not null"`
	Privacy       string                            `gorm:"type:varchar(16);not null;default:'team'"`
	CreatedAt     time.Time                         `gorm:"not null;index"`
	IsDeleted     bool                              `gorm:"not null;default:false;index:idx_events_deleted,priority:1"`
	DeletedAt     *time.Time                        `gorm:"index:idx_events_deleted,priority:2"`
	ParentEventID *string                           `gorm:"type:varchar(36);index"`
	InstanceDate  *time.Time
	IsException   bool `gorm:"not null;default:false"`
}

func (EventRecord) TableName() string {
	return "events"
}

// NewEventRecord domain modelini tablo satırına çevirir.
func NewEventRecord(e *Event) *EventRecord {
	rec := &EventRecord{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		StartDate:     e.StartDate.UTC(),
		EndDate:       e.EndDate.UTC(),
		Timezone:      e.Timezone,
		Team:          e.Team,
		Guests:        datatypes.JSONSlice[Guest](append([]Guest{}, e.Guests...)),
		Recurring:     datatypes.NewJSONType(e.Recurring),
		RSVPRequired:  e.RSVPRequired,
		Notifications: datatypes.NewJSONType(e.Notifications),
		Privacy:       string(e.Privacy),
		CreatedAt:     e.CreatedAt.UTC(),
		IsDeleted:     e.IsDeleted,
		IsException:   e.IsException,
	}
	if !e.Location.IsZero() {
		if raw, err := json.Marshal(e.Location); err == nil {
			rec.Location = datatypes.JSON(raw)
		}
	}
	if e.DeletedAt != nil {
		deletedAt := e.DeletedAt.UTC()
		rec.DeletedAt = &deletedAt
	}
	if e.ParentEventID != "" {
		parent := e.ParentEventID
		rec.ParentEventID = &parent
	}
	if e.InstanceDate != nil {
		instance := e.InstanceDate.UTC()
		rec.InstanceDate = &instance
	}
	return rec
}

// ToEvent satırı domain modeline geri çevirir.
func (r *EventRecord) ToEvent() *Event {
	e := &Event{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		StartDate:     NewInstant(r.StartDate),
		EndDate:       NewInstant(r.EndDate),
		Timezone:      r.Timezone,
		Team:          r.Team,
		Guests:        append([]Guest{}, r.Guests...),
		Recurring:     r.Recurring.Data(),
		RSVPRequired:  r.RSVPRequired,
		Notifications: r.Notifications.Data(),
		Privacy:       Privacy(r.Privacy),
		CreatedAt:     r.CreatedAt.UTC(),
		IsDeleted:     r.IsDeleted,
		IsException:   r.IsException,
	}
	if len(r.Location) > 0 && string(r.Location) != "null" {
		var loc Location
		if err := json.Unmarshal(r.Location, &loc); err == nil && !loc.IsZero() {
			e.Location = &loc
		}
	}
	if r.DeletedAt != nil {
		deletedAt := r.DeletedAt.UTC()
		e.DeletedAt = &deletedAt
	}
	if r.ParentEventID != nil {
		e.ParentEventID = *r.ParentEventID
	}
	if r.InstanceDate != nil {
		e.InstanceDate = InstantPtr(*r.InstanceDate)
	}
	return e
}
