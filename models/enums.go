package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Frequency tekrarlayan etkinliğin periyodu.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func ParseFrequency(value string) (Frequency, error) {
	switch f := Frequency(value); f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return f, nil
	}
	return "", fmt.Errorf("invalid frequency: %q", value)
}

func (f *Frequency) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, f, ParseFrequency)
}

// Reminder etkinlik öncesi hatırlatma süresi.
type Reminder string

const (
	ReminderNone      Reminder = "none"
	Reminder15Minutes Reminder = "15min"
	Reminder1Hour     Reminder = "1hour"
	Reminder1Day      Reminder = "1day"
	Reminder1Week     Reminder = "1week"
)

var reminderDurations = map[Reminder]time.Duration{
	Reminder15Minutes: 15 * time.Minute,
	Reminder1Hour:     time.Hour,
	Reminder1Day:      24 * time.Hour,
	Reminder1Week:     7 * 24 * time.Hour,
}

func ParseReminder(value string) (Reminder, error) {
	switch r := Reminder(value); r {
	case ReminderNone, Reminder15Minutes, Reminder1Hour, Reminder1Day, Reminder1Week:
		return r, nil
	}
	return "", fmt.Errorf("invalid reminder: %q", value)
}

// Duration etkinlik başlangıcından ne kadar önce hatırlatılacağını döndürür.
// ReminderNone için ok=false.
func (r Reminder) Duration() (time.Duration, bool) {
	d, ok := reminderDurations[r]
	return d, ok
}

func (r *Reminder) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, r, ParseReminder)
}

// Privacy etkinliğin görünürlüğü.
type Privacy string

const (
	PrivacyTeam   Privacy = "team"
	PrivacyPublic Privacy = "public"
)

func ParsePrivacy(value string) (Privacy, error) {
	switch p := Privacy(value); p {
	case PrivacyTeam, PrivacyPublic:
		return p, nil
	}
	return "", fmt.Errorf("invalid privacy: %q", value)
}

func (p *Privacy) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, p, ParsePrivacy)
}

// GuestType davetlinin kayıtlı üye mi harici kişi mi olduğunu belirtir.
type GuestType string

const (
	GuestTypeUser     GuestType = "user"
	GuestTypeExternal GuestType = "external"
)

func ParseGuestType(value string) (GuestType, error) {
	switch g := GuestType(value); g {
	case GuestTypeUser, GuestTypeExternal:
		return g, nil
	}
	return "", fmt.Errorf("invalid guest type: %q", value)
}

func (g *GuestType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, g, ParseGuestType)
}

// UpdateType güncellemenin tek bir tekrara mı seriye mi uygulanacağını belirtir.
type UpdateType string

const (
	UpdateTypeSingle UpdateType = "single"
	UpdateTypeSeries UpdateType = "series"
)

func ParseUpdateType(value string) (UpdateType, error) {
	switch u := UpdateType(value); u {
	case "":
		return UpdateTypeSeries, nil
	case UpdateTypeSingle, UpdateTypeSeries:
		return u, nil
	}
	return "", fmt.Errorf("invalid updateType: %q", value)
}

// unmarshalEnum boş metni sıfır değer olarak kabul eder, tanımsız değerleri reddeder.
func unmarshalEnum[T ~string](data []byte, target *T, parse func(string) (T, error)) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*target = ""
		return nil
	}
	value, err := parse(raw)
	if err != nil {
		return err
	}
	*target = value
	return nil
}
