// Package clock zamanı servis ve repository katmanlarına enjekte etmek için kullanılır.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// Real sistem saatini UTC olarak döndürür.
type Real struct{}

func (Real) Now() time.Time { return time.Now().UTC() }

// Manual testlerde elle ilerletilen saat.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start.UTC()}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t.UTC()
	m.mu.Unlock()
}
