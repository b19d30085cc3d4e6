package models

import (
	"strings"
	"time"
)

// RetentionWindow silinen bir etkinliğin kurtarılabileceği süre. Kurtarma,
// silinenler listesi ve kalıcı temizlik aynı sabiti kullanır.
const RetentionWindow = 24 * time.Hour

type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Location etkinlik adresi; nil "konum yok" demektir.
type Location struct {
	Address     string       `json:"address,omitempty"`
	PlaceID     string       `json:"placeId,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

func (l *Location) IsZero() bool {
	return l == nil || (strings.TrimSpace(l.Address) == "" && l.PlaceID == "" && l.Coordinates == nil)
}

// Equal yapısal eşitlik; boş konum nil ile eşittir.
func (l *Location) Equal(other *Location) bool {
	if l.IsZero() || other.IsZero() {
		return l.IsZero() && other.IsZero()
	}
	if l.Address != other.Address || l.PlaceID != other.PlaceID {
		return false
	}
	if l.Coordinates == nil || other.Coordinates == nil {
		return l.Coordinates == nil && other.Coordinates == nil
	}
	return *l.Coordinates == *other.Coordinates
}

func (l *Location) clone() *Location {
	if l.IsZero() {
		return nil
	}
	c := *l
	if l.Coordinates != nil {
		coords := *l.Coordinates
		c.Coordinates = &coords
	}
	return &c
}

// Guest etkinlik davetlisi. user tipinde ID, external tipinde Name ve Email kullanılır.
type Guest struct {
	Type  GuestType `json:"type"`
	ID    string    `json:"id,omitempty"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
}

// Key aynı etkinlikte tekrarlanamayacak tip+kimlik çiftidir.
func (g Guest) Key() string {
	if g.Type == GuestTypeUser {
		return string(g.Type) + ":" + g.ID
	}
	return string(g.Type) + ":" + strings.ToLower(strings.TrimSpace(g.Email))
}

// GuestsEqual sıra dahil eleman eleman karşılaştırır.
func GuestsEqual(a, b []Guest) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Recurring tekrar kuralı. EndDate yalnızca Enabled iken anlamlıdır.
type Recurring struct {
	Enabled   bool      `json:"enabled"`
	Frequency Frequency `json:"frequency,omitempty"`
	Interval  int       `json:"interval,omitempty"`
	EndDate   *Instant  `json:"endDate,omitempty"`
}

// Normalize kayıtta kullanılan varsayılanları uygular (weekly, interval 1).
func (r Recurring) Normalize() Recurring {
	if !r.Enabled {
		return Recurring{Enabled: false}
	}
	if r.Frequency == "" {
		r.Frequency = FrequencyWeekly
	}
	if r.Interval == 0 {
		r.Interval = 1
	}
	if r.EndDate != nil {
		end := NewInstant(r.EndDate.Time)
		r.EndDate = &end
	}
	return r
}

func (r Recurring) Equal(other Recurring) bool {
	return r.Enabled == other.Enabled &&
		r.Frequency == other.Frequency &&
		r.Interval == other.Interval &&
		SameInstant(r.EndDate, other.EndDate)
}

type Notifications struct {
	Email    bool     `json:"email"`
	Reminder Reminder `json:"reminder"`
}

func DefaultNotifications() Notifications {
	return Notifications{Email: true, Reminder: Reminder1Day}
}

// Normalize boş hatırlatmayı varsayılan 1day yapar.
func (n Notifications) Normalize() Notifications {
	if n.Reminder == "" {
		n.Reminder = Reminder1Day
	}
	return n
}

// Event sistemin ana kaydı.
type Event struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	StartDate     Instant       `json:"startDate"`
	EndDate       Instant       `json:"endDate"`
	Timezone      string        `json:"timezone"`
	Location      *Location     `json:"location,omitempty"`
	Team          string        `json:"team,omitempty"`
	Guests        []Guest       `json:"guests"`
	Recurring     Recurring     `json:"recurring"`
	RSVPRequired  bool          `json:"rsvpRequired"`
	Notifications Notifications `json:"notifications"`
	Privacy       Privacy       `json:"privacy"`
	CreatedAt     time.Time     `json:"createdAt"`

	// Soft delete
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Tekrar istisnası (tek bir tekrarın düzenlenmiş kopyası)
	ParentEventID string   `json:"parentEventId,omitempty"`
	InstanceDate  *Instant `json:"instanceDate,omitempty"`
	IsException   bool     `json:"isException"`
}

// IsSeries etkinliğin tekrarlayan bir seri olup olmadığını bildirir.
func (e *Event) IsSeries() bool {
	return e.Recurring.Enabled && !e.IsException
}

func (e *Event) Duration() time.Duration {
	return e.EndDate.Sub(e.StartDate.Time)
}

// Clone paylaşılan dilim ve işaretçiler olmadan derin kopya üretir.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.Location = e.Location.clone()
	c.Guests = append(make([]Guest, 0, len(e.Guests)), e.Guests...)
	if e.Recurring.EndDate != nil {
		end := *e.Recurring.EndDate
		c.Recurring.EndDate = &end
	}
	if e.DeletedAt != nil {
		deletedAt := *e.DeletedAt
		c.DeletedAt = &deletedAt
	}
	if e.InstanceDate != nil {
		instance := *e.InstanceDate
		c.InstanceDate = &instance
	}
	return &c
}
