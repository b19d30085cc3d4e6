// Package eventdiff bir etkinliğin mevcut hali ile uygulanacak yama arasındaki
// alan bazlı farkı hesaplar. Paket durumsuzdur; aynı girdi her zaman aynı
// çıktıyı üretir.
package eventdiff

import (
	"takvim.link/models"
)

// TrackedFields izlenen alanlar, çıktı sırası da budur.
var TrackedFields = []string{
	"title",
	"description",
	"startDate",
	"endDate",
	"timezone",
	"location",
	"team",
	"guests",
	"recurring",
	"rsvpRequired",
	"notifications",
	"privacy",
}

// Diff yamada bulunan ve orijinalden farklı olan her alan için bir Change döndürür.
// Yamada olmayan alanlar değişmemiş kabul edilir. Tarihler mutlak an olarak karşılaştırılır.
func Diff(original *models.Event, patch models.EventPatch) []models.Change {
	changes := make([]models.Change, 0)
	if original == nil {
		return changes
	}

	add := func(field string, oldValue, newValue any, changeType models.ChangeType) {
		changes = append(changes, models.Change{
			Field:      field,
			OldValue:   oldValue,
			NewValue:   newValue,
			ChangeType: changeType,
		})
	}

	if p := patch.Title; p != nil && *p != original.Title {
		add("title", original.Title, *p, models.ChangeTitle)
	}
	if p := patch.Description; p != nil && *p != original.Description {
		add("description", original.Description, *p, models.ChangeDescription)
	}
	if p := patch.StartDate; p != nil && !p.Time.Equal(original.StartDate.Time) {
		add("startDate", original.StartDate.UTC(), p.UTC(), models.ChangeStartTime)
	}
	if p := patch.EndDate; p != nil && !p.Time.Equal(original.EndDate.Time) {
		add("endDate", original.EndDate.UTC(), p.UTC(), models.ChangeEndTime)
	}
	if p := patch.Timezone; p != nil && *p != original.Timezone {
		add("timezone", original.Timezone, *p, models.ChangeTimezone)
	}
	if p := patch.Location; p != nil && !original.Location.Equal(p) {
		var newLocation *models.Location
		if !p.IsZero() {
			newLocation = p
		}
		add("location", original.Location, newLocation, models.ChangeLocation)
	}
	if p := patch.Team; p != nil && *p != original.Team {
		add("team", original.Team, *p, models.ChangeTeam)
	}
	if p := patch.Guests; p != nil && !models.GuestsEqual(original.Guests, *p) {
		add("guests", original.Guests, *p, models.ChangeGuests)
	}
	if p := patch.Recurring; p != nil {
		next := p.Normalize()
		if !original.Recurring.Equal(next) {
			add("recurring", original.Recurring, next, models.ChangeRecurring)
		}
	}
	if p := patch.RSVPRequired; p != nil && *p != original.RSVPRequired {
		add("rsvpRequired", original.RSVPRequired, *p, models.ChangeRSVPRequired)
	}
	if p := patch.Notifications; p != nil {
		next := p.Normalize()
		if next != original.Notifications {
			add("notifications", original.Notifications, next, models.ChangeNotifications)
		}
	}
	if p := patch.Privacy; p != nil && *p != "" && *p != original.Privacy {
		add("privacy", original.Privacy, *p, models.ChangePrivacy)
	}

	return changes
}

// Fields değişen alan adlarını sırasıyla döndürür.
func Fields(changes []models.Change) []string {
	fields := make([]string, len(changes))
	for i, c := range changes {
		fields[i] = c.Field
	}
	return fields
}
