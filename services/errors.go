package services

import (
	"strings"
)

// EventServiceError özel servis hataları
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound       EventServiceError = "event not found"
	ErrEventAlreadyDeleted EventServiceError = "event is already deleted"
	ErrEventNotDeleted     EventServiceError = "event is not deleted"
	ErrRetentionExpired    EventServiceError = "event can no longer be recovered, retention window expired"
	ErrStorageFailure      EventServiceError = "internal error"
)

// FieldError tek bir alan için doğrulama hatası.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError kullanıcı tarafından düzeltilebilir girdi hatalarını listeler.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// orNil hata yoksa nil döndürür; typed-nil arayüz tuzağına düşmemek için.
func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
