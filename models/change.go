package models

// ChangeType değişikliğin türü; bildirim tüketicileri bu değere göre şablon seçer.
type ChangeType string

const (
	ChangeStartTime     ChangeType = "start_time_changed"
	ChangeEndTime       ChangeType = "end_time_changed"
	ChangeTitle         ChangeType = "title_changed"
	ChangeDescription   ChangeType = "description_changed"
	ChangeTimezone      ChangeType = "timezone_changed"
	ChangeLocation      ChangeType = "location_changed"
	ChangeTeam          ChangeType = "team_changed"
	ChangeGuests        ChangeType = "guests_changed"
	ChangeRecurring     ChangeType = "recurring_changed"
	ChangeRSVPRequired  ChangeType = "rsvpRequired_changed"
	ChangeNotifications ChangeType = "notifications_changed"
	ChangePrivacy       ChangeType = "privacy_changed"
)

// Change tek bir alanın eski ve yeni değeri.
type Change struct {
	Field      string     `json:"field"`
	OldValue   any        `json:"oldValue"`
	NewValue   any        `json:"newValue"`
	ChangeType ChangeType `json:"changeType"`
}
