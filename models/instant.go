package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "time/tzdata" // IANA zone verisi olmayan imajlarda timezone doğrulaması için
)

// Instant istemciden gelen mutlak zaman değeridir. Tarayıcıların gönderdiği
// kısaltılmış ISO-8601 biçimlerini de kabul eder, her zaman UTC saklanır.
type Instant struct {
	time.Time
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func NewInstant(t time.Time) Instant {
	return Instant{Time: t.UTC()}
}

// InstantPtr opsiyonel alanlar için yardımcı.
func InstantPtr(t time.Time) *Instant {
	i := NewInstant(t)
	return &i
}

// ParseInstant desteklenen biçimlerden ilk eşleşeni kullanır.
func ParseInstant(value string) (Instant, error) {
	value = strings.TrimSpace(value)
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return NewInstant(t), nil
		}
	}
	return Instant{}, fmt.Errorf("invalid time value: %q", value)
}

func (i Instant) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.UTC().Format(time.RFC3339Nano))
}

func (i *Instant) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = Instant{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("time value must be a string: %w", err)
	}
	parsed, err := ParseInstant(raw)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// SameInstant iki değerin aynı ana karşılık gelip gelmediğini bildirir; nil değerler yalnızca birbirine eşittir.
func SameInstant(a, b *Instant) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Time.Equal(b.Time)
}
