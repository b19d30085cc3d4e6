package models

// EventInput yeni etkinlik oluşturma isteği. Zorunlu alanlar validate
// etiketleriyle denetlenir; diğerleri için varsayılanlar ApplyDefaults'ta.
type EventInput struct {
	Title         string         `json:"title" validate:"notblank"`
	Description   string         `json:"description" validate:"notblank"`
	StartDate     *Instant       `json:"startDate" validate:"required"`
	EndDate       *Instant       `json:"endDate" validate:"required"`
	Timezone      string         `json:"timezone" validate:"notblank,timezone"`
	Location      *Location      `json:"location,omitempty"`
	Team          string         `json:"team,omitempty"`
	Guests        []Guest        `json:"guests,omitempty"`
	Recurring     *Recurring     `json:"recurring,omitempty"`
	RSVPRequired  bool           `json:"rsvpRequired,omitempty"`
	Notifications *Notifications `json:"notifications,omitempty"`
	Privacy       Privacy        `json:"privacy,omitempty"`
}

// ToEvent girdiyi varsayılanlar uygulanmış, henüz kimliksiz bir Event'e çevirir.
func (in EventInput) ToEvent() *Event {
	event := &Event{
		Title:         in.Title,
		Description:   in.Description,
		Timezone:      in.Timezone,
		Location:      in.Location.clone(),
		Team:          in.Team,
		Guests:        append([]Guest{}, in.Guests...),
		Recurring:     Recurring{Enabled: false},
		RSVPRequired:  in.RSVPRequired,
		Notifications: DefaultNotifications(),
		Privacy:       PrivacyTeam,
	}
	if in.StartDate != nil {
		event.StartDate = NewInstant(in.StartDate.Time)
	}
	if in.EndDate != nil {
		event.EndDate = NewInstant(in.EndDate.Time)
	}
	if in.Recurring != nil {
		event.Recurring = in.Recurring.Normalize()
	}
	if in.Notifications != nil {
		event.Notifications = in.Notifications.Normalize()
	}
	if in.Privacy != "" {
		event.Privacy = in.Privacy
	}
	return event
}

// EventPatch kısmi güncelleme. nil alan "değişmedi" anlamına gelir.
type EventPatch struct {
	Title         *string        `json:"title,omitempty"`
	Description   *string        `json:"description,omitempty"`
	StartDate     *Instant       `json:"startDate,omitempty"`
	EndDate       *Instant       `json:"endDate,omitempty"`
	Timezone      *string        `json:"timezone,omitempty"`
	Location      *Location      `json:"location,omitempty"`
	Team          *string        `json:"team,omitempty"`
	Guests        *[]Guest       `json:"guests,omitempty"`
	Recurring     *Recurring     `json:"recurring,omitempty"`
	RSVPRequired  *bool          `json:"rsvpRequired,omitempty"`
	Notifications *Notifications `json:"notifications,omitempty"`
	Privacy       *Privacy       `json:"privacy,omitempty"`
}

func (p EventPatch) IsEmpty() bool {
	return p == EventPatch{}
}

// ApplyTo mevcut alanları olaya yazar. Boş bir location konumu kaldırır.
func (p EventPatch) ApplyTo(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartDate != nil {
		e.StartDate = NewInstant(p.StartDate.Time)
	}
	if p.EndDate != nil {
		e.EndDate = NewInstant(p.EndDate.Time)
	}
	if p.Timezone != nil {
		e.Timezone = *p.Timezone
	}
	if p.Location != nil {
		e.Location = p.Location.clone()
	}
	if p.Team != nil {
		e.Team = *p.Team
	}
	if p.Guests != nil {
		e.Guests = append([]Guest{}, (*p.Guests)...)
	}
	if p.Recurring != nil {
		e.Recurring = p.Recurring.Normalize()
	}
	if p.RSVPRequired != nil {
		e.RSVPRequired = *p.RSVPRequired
	}
	if p.Notifications != nil {
		e.Notifications = p.Notifications.Normalize()
	}
	if p.Privacy != nil && *p.Privacy != "" {
		e.Privacy = *p.Privacy
	}
}
