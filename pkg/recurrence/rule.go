// Package recurrence etkinliklerin tekrar tanımını RFC 5545 kuralına çevirir.
// Tekrarlar burada genişletilip saklanmaz; kural yalnızca doğrulama, tekrar
// anı kontrolü ve iCalendar çıktısı için kullanılır.
package recurrence

import (
	"errors"
	"fmt"
	"time"

	"takvim.link/models"

	"github.com/teambition/rrule-go"
)

var (
	ErrNotRecurring    = errors.New("etkinlik tekrarlayan değil")
	ErrInvalidInterval = errors.New("interval en az 1 olmalı")
	ErrInvalidEndDate  = errors.New("tekrar bitiş tarihi başlangıçtan önce olamaz")
)

func toFrequency(f models.Frequency) (rrule.Frequency, error) {
	switch f {
	case models.FrequencyWeekly, "":
		return rrule.WEEKLY, nil
	case models.FrequencyMonthly:
		return rrule.MONTHLY, nil
	case models.FrequencyYearly:
		return rrule.YEARLY, nil
	}
	return 0, fmt.Errorf("desteklenmeyen frequency: %q", f)
}

// Validate tekrar tanımının kurala çevrilebildiğini denetler. Kapalı tanımlar her zaman geçerlidir.
func Validate(r models.Recurring, start time.Time, timezone string) error {
	if !r.Enabled {
		return nil
	}
	_, err := Rule(r, start, timezone)
	return err
}

// Rule seriyi etkinliğin kendi saat diliminde kurar; böylece yaz saati
// geçişlerinde yerel başlangıç saati korunur.
func Rule(r models.Recurring, start time.Time, timezone string) (*rrule.RRule, error) {
	if !r.Enabled {
		return nil, ErrNotRecurring
	}
	r = r.Normalize()
	if r.Interval < 1 {
		return nil, ErrInvalidInterval
	}
	freq, err := toFrequency(r.Frequency)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("geçersiz timezone %q: %w", timezone, err)
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: r.Interval,
		Dtstart:  start.In(loc),
	}
	if r.EndDate != nil {
		if r.EndDate.Before(start) {
			return nil, ErrInvalidEndDate
		}
		opt.Until = r.EndDate.In(loc)
	}
	return rrule.NewRRule(opt)
}

// RRuleString DTSTART olmadan "FREQ=WEEKLY;INTERVAL=1" biçiminde kuralı döndürür.
func RRuleString(r models.Recurring, start time.Time, timezone string) (string, error) {
	rule, err := Rule(r, start, timezone)
	if err != nil {
		return "", err
	}
	return rule.OrigOptions.RRuleString(), nil
}

// IsOccurrence verilen anın serinin bir tekrarına denk gelip gelmediğini bildirir.
// Kurallar saniye hassasiyetinde çalışır.
func IsOccurrence(rule *rrule.RRule, instant time.Time) bool {
	target := instant.Truncate(time.Second)
	for _, occ := range rule.Between(target.Add(-time.Second), target.Add(time.Second), true) {
		if occ.Equal(target) {
			return true
		}
	}
	return false
}

// SeriesContains olayın serisi için IsOccurrence kısayolu.
func SeriesContains(series *models.Event, instant time.Time) (bool, error) {
	rule, err := Rule(series.Recurring, series.StartDate.Time, series.Timezone)
	if err != nil {
		return false, err
	}
	return IsOccurrence(rule, instant), nil
}
