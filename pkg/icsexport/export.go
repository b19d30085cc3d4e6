// Package icsexport aktif etkinlikleri iCalendar (RFC 5545) akışı olarak yazar.
// Seriler RRULE ile, istisnalar serinin UID'si ve RECURRENCE-ID ile çıkar.
package icsexport

import (
	"fmt"
	"time"

	"takvim.link/models"
	"takvim.link/pkg/recurrence"

	ical "github.com/arran4/golang-ical"
)

const DefaultProductID = "-//takvim.link//Event Lifecycle Service//EN"

const icsUTCLayout = "20060102T150405Z"

// MemberLookup user tipindeki davetlilerin e-posta adresini çözer.
type MemberLookup func(id string) (models.Member, bool)

type Options struct {
	ProductID string
	Now       time.Time
	Members   MemberLookup
}

// Render olayları tek bir VCALENDAR olarak serileştirir.
func Render(events []*models.Event, opts Options) string {
	if opts.ProductID == "" {
		opts.ProductID = DefaultProductID
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(opts.ProductID)

	for _, e := range events {
		if e == nil || e.IsDeleted {
			continue
		}
		addEvent(cal, e, opts)
	}
	return cal.Serialize()
}

func addEvent(cal *ical.Calendar, e *models.Event, opts Options) {
	uid := e.ID
	if e.IsException && e.ParentEventID != "" {
		uid = e.ParentEventID
	}

	ev := cal.AddEvent(uid)
	ev.SetDtStampTime(opts.Now)
	ev.SetCreatedTime(e.CreatedAt)
	ev.SetStartAt(e.StartDate.Time)
	ev.SetEndAt(e.EndDate.Time)
	ev.SetSummary(e.Title)
	ev.SetDescription(e.Description)
	if !e.Location.IsZero() {
		ev.SetLocation(e.Location.Address)
	}
	if e.Privacy == models.PrivacyPublic {
		ev.SetProperty("CLASS", "PUBLIC")
	} else {
		ev.SetProperty("CLASS", "PRIVATE")
	}

	if e.IsException && e.InstanceDate != nil {
		ev.SetProperty("RECURRENCE-ID", e.InstanceDate.UTC().Format(icsUTCLayout))
	} else if e.IsSeries() {
		if rule, err := recurrence.RRuleString(e.Recurring, e.StartDate.Time, e.Timezone); err == nil {
			ev.AddProperty(ical.ComponentPropertyRrule, rule)
		}
	}

	for _, g := range e.Guests {
		switch g.Type {
		case models.GuestTypeExternal:
			ev.AddAttendee("mailto:"+g.Email, ical.WithCN(g.Name), ical.WithRSVP(e.RSVPRequired))
		case models.GuestTypeUser:
			if opts.Members == nil {
				continue
			}
			if m, ok := opts.Members(g.ID); ok {
				ev.AddAttendee("mailto:"+m.Email, ical.WithCN(m.Name), ical.WithRSVP(e.RSVPRequired))
			}
		}
	}

	if d, ok := e.Notifications.Reminder.Duration(); ok {
		alarm := ev.AddAlarm()
		alarm.SetProperty("ACTION", "DISPLAY")
		alarm.SetProperty("TRIGGER", triggerFor(d))
		alarm.SetProperty("DESCRIPTION", e.Title)
	}
}

// triggerFor hatırlatma süresini negatif ISO-8601 süresine çevirir (-PT15M, -P1D, -P1W).
func triggerFor(d time.Duration) string {
	switch {
	case d%(7*24*time.Hour) == 0:
		return fmt.Sprintf("-P%dW", d/(7*24*time.Hour))
	case d%(24*time.Hour) == 0:
		return fmt.Sprintf("-P%dD", d/(24*time.Hour))
	case d%time.Hour == 0:
		return fmt.Sprintf("-PT%dH", d/time.Hour)
	default:
		return fmt.Sprintf("-PT%dM", d/time.Minute)
	}
}
