package eventdiff

import (
	"reflect"
	"testing"
	"time"

	"takvim.link/models"
)

func mustInstant(t *testing.T, value string) *models.Instant {
	t.Helper()
	i, err := models.ParseInstant(value)
	if err != nil {
		t.Fatalf("ParseInstant(%q): %v", value, err)
	}
	return &i
}

func baseEvent(t *testing.T) *models.Event {
	return &models.Event{
		ID:            "evt-1",
		Title:         "A",
		Description:   "desc",
		StartDate:     *mustInstant(t, "2024-01-01T09:00:00Z"),
		EndDate:       *mustInstant(t, "2024-01-01T09:15:00Z"),
		Timezone:      "UTC",
		Location:      &models.Location{Address: "Main St 1", Coordinates: &models.Coordinates{Lat: 1, Lng: 2}},
		Guests:        []models.Guest{{Type: models.GuestTypeUser, ID: "user1"}},
		Recurring:     models.Recurring{Enabled: true, Frequency: models.FrequencyWeekly, Interval: 1},
		Notifications: models.DefaultNotifications(),
		Privacy:       models.PrivacyTeam,
	}
}

func strPtr(s string) *string { return &s }

func TestDiffStartDateComparesInstants(t *testing.T) {
	original := baseEvent(t)

	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "same instant, different encoding", value: "2024-01-01T12:00:00+03:00", want: 0},
		{name: "same instant, short form", value: "2024-01-01T09:00Z", want: 0},
		{name: "different instant", value: "2024-01-01T10:00:00Z", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := Diff(original, models.EventPatch{StartDate: mustInstant(t, tt.value)})
			if len(changes) != tt.want {
				t.Fatalf("got %d changes, want %d: %+v", len(changes), tt.want, changes)
			}
			if tt.want == 1 && changes[0].ChangeType != models.ChangeStartTime {
				t.Errorf("changeType = %q, want %q", changes[0].ChangeType, models.ChangeStartTime)
			}
		})
	}
}

func TestDiffEndDate(t *testing.T) {
	changes := Diff(baseEvent(t), models.EventPatch{EndDate: mustInstant(t, "2024-01-01T10:00:00Z")})
	if len(changes) != 1 || changes[0].ChangeType != models.ChangeEndTime || changes[0].Field != "endDate" {
		t.Fatalf("unexpected changes: %+v", changes)
	}
	if got, ok := changes[0].OldValue.(time.Time); !ok || !got.Equal(baseEvent(t).EndDate.Time) {
		t.Errorf("oldValue = %v", changes[0].OldValue)
	}
}

func TestDiffUnchangedTitle(t *testing.T) {
	if changes := Diff(baseEvent(t), models.EventPatch{Title: strPtr("A")}); len(changes) != 0 {
		t.Fatalf("expected no change, got %+v", changes)
	}
}

func TestDiffIgnoresAbsentFields(t *testing.T) {
	if changes := Diff(baseEvent(t), models.EventPatch{}); len(changes) != 0 {
		t.Fatalf("expected no change for empty patch, got %+v", changes)
	}
}

func TestDiffStructuredFields(t *testing.T) {
	sameGuests := []models.Guest{{Type: models.GuestTypeUser, ID: "user1"}}
	moreGuests := []models.Guest{{Type: models.GuestTypeUser, ID: "user1"}, {Type: models.GuestTypeUser, ID: "user2"}}

	tests := []struct {
		name  string
		patch models.EventPatch
		want  []models.ChangeType
	}{
		{
			name:  "equal location",
			patch: models.EventPatch{Location: &models.Location{Address: "Main St 1", Coordinates: &models.Coordinates{Lat: 1, Lng: 2}}},
		},
		{
			name:  "moved location",
			patch: models.EventPatch{Location: &models.Location{Address: "Main St 1", Coordinates: &models.Coordinates{Lat: 1, Lng: 3}}},
			want:  []models.ChangeType{models.ChangeLocation},
		},
		{
			name:  "cleared location",
			patch: models.EventPatch{Location: &models.Location{}},
			want:  []models.ChangeType{models.ChangeLocation},
		},
		{
			name:  "equal guests",
			patch: models.EventPatch{Guests: &sameGuests},
		},
		{
			name:  "added guest",
			patch: models.EventPatch{Guests: &moreGuests},
			want:  []models.ChangeType{models.ChangeGuests},
		},
		{
			name:  "recurring defaults are equal",
			patch: models.EventPatch{Recurring: &models.Recurring{Enabled: true}},
		},
		{
			name:  "recurring interval",
			patch: models.EventPatch{Recurring: &models.Recurring{Enabled: true, Frequency: models.FrequencyWeekly, Interval: 2}},
			want:  []models.ChangeType{models.ChangeRecurring},
		},
		{
			name:  "notifications reminder defaults",
			patch: models.EventPatch{Notifications: &models.Notifications{Email: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := Diff(baseEvent(t), tt.patch)
			got := make([]models.ChangeType, 0, len(changes))
			for _, c := range changes {
				got = append(got, c.ChangeType)
			}
			want := tt.want
			if want == nil {
				want = []models.ChangeType{}
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("change types = %v, want %v", got, want)
			}
		})
	}
}

func TestDiffOrderFollowsTrackedFields(t *testing.T) {
	privacy := models.PrivacyPublic
	rsvp := true
	team := "team2"
	tz := "Europe/Istanbul"

	patch := models.EventPatch{
		Privacy:      &privacy,
		Title:        strPtr("B"),
		RSVPRequired: &rsvp,
		Team:         &team,
		Timezone:     &tz,
		Description:  strPtr("other"),
		StartDate:    mustInstant(t, "2024-02-01T09:00:00Z"),
	}

	got := Fields(Diff(baseEvent(t), patch))
	want := []string{"title", "description", "startDate", "timezone", "team", "rsvpRequired", "privacy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
}

func TestDiffIsDeterministic(t *testing.T) {
	patch := models.EventPatch{Title: strPtr("B"), EndDate: mustInstant(t, "2024-01-01T11:00:00Z")}
	first := Diff(baseEvent(t), patch)
	second := Diff(baseEvent(t), patch)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("diff is not deterministic: %+v vs %+v", first, second)
	}
}
