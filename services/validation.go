package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"takvim.link/models"
	"takvim.link/pkg/recurrence"
	"takvim.link/repositories"

	"github.com/go-playground/validator/v10"
)

// EventValidator etkinlik girdilerini ve yamalarını alan alan doğrular.
type EventValidator struct {
	validate  *validator.Validate
	directory repositories.IDirectoryRepository
}

func NewEventValidator(directory repositories.IDirectoryRepository) *EventValidator {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &EventValidator{validate: v, directory: directory}
}

// ValidateInput oluşturma isteğini doğrular. Dönen hata *ValidationError veya depolama hatasıdır.
func (v *EventValidator) ValidateInput(ctx context.Context, in models.EventInput) error {
	verr := &ValidationError{}

	if err := v.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			verr.add(fieldPath(fe), messageFor(fe))
		}
	}

	if err := v.checkGuests(ctx, "guests", in.Guests, verr); err != nil {
		return err
	}
	if in.Recurring != nil && len(verr.Fields) == 0 {
		v.checkRecurring(*in.Recurring, in.StartDate.Time, in.Timezone, verr)
	}
	return verr.orNil()
}

// ValidatePatch yalnızca yamada bulunan alanları, yamanın uygulanmış hali üzerinden denetler.
func (v *EventValidator) ValidatePatch(ctx context.Context, patch models.EventPatch, current *models.Event) error {
	verr := &ValidationError{}

	if patch.Title != nil {
		v.checkVar("title", *patch.Title, "notblank", verr)
	}
	if patch.Description != nil {
		v.checkVar("description", *patch.Description, "notblank", verr)
	}
	if patch.Timezone != nil {
		v.checkVar("timezone", *patch.Timezone, "notblank,timezone", verr)
	}
	if patch.Location != nil && patch.Location.Coordinates != nil {
		if err := v.validate.Struct(patch.Location.Coordinates); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				return err
			}
			for _, fe := range fieldErrs {
				verr.add("location.coordinates."+fe.Field(), messageFor(fe))
			}
		}
	}
	if patch.Guests != nil {
		if err := v.checkGuests(ctx, "guests", *patch.Guests, verr); err != nil {
			return err
		}
	}

	// İstisna kaydı tek bir tekrardır; yeniden seri olamaz.
	if current.IsException && patch.Recurring != nil && patch.Recurring.Enabled {
		verr.add("recurring.enabled", "cannot be enabled on a recurring exception")
	}

	merged := current.Clone()
	patch.ApplyTo(merged)
	touchesRule := patch.Recurring != nil || patch.StartDate != nil || patch.Timezone != nil
	if touchesRule && merged.Recurring.Enabled && len(verr.Fields) == 0 {
		v.checkRecurring(merged.Recurring, merged.StartDate.Time, merged.Timezone, verr)
	}
	return verr.orNil()
}

func (v *EventValidator) checkVar(field string, value interface{}, tag string, verr *ValidationError) {
	if err := v.validate.Var(value, tag); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			verr.add(field, messageFor(fieldErrs[0]))
			return
		}
		verr.add(field, err.Error())
	}
}

func (v *EventValidator) checkGuests(ctx context.Context, field string, guests []models.Guest, verr *ValidationError) error {
	seen := make(map[string]struct{}, len(guests))
	for i, g := range guests {
		path := fmt.Sprintf("%s[%d]", field, i)
		switch g.Type {
		case models.GuestTypeUser:
			if strings.TrimSpace(g.ID) == "" {
				verr.add(path+".id", "is required for user guests")
				continue
			}
			if v.directory != nil {
				if _, err := v.directory.FindMember(ctx, g.ID); err != nil {
					if !errors.Is(err, repositories.ErrNotFound) {
						return err
					}
					verr.add(path+".id", "does not match a known user")
					continue
				}
			}
		case models.GuestTypeExternal:
			if strings.TrimSpace(g.Name) == "" {
				verr.add(path+".name", "is required for external guests")
			}
			if err := v.validate.Var(g.Email, "required,email"); err != nil {
				verr.add(path+".email", "must be a valid email address")
				continue
			}
		default:
			verr.add(path+".type", "must be one of: user, external")
			continue
		}
		key := g.Key()
		if _, dup := seen[key]; dup {
			verr.add(path, "duplicate guest")
			continue
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (v *EventValidator) checkRecurring(r models.Recurring, start time.Time, timezone string, verr *ValidationError) {
	err := recurrence.Validate(r, start, timezone)
	switch {
	case err == nil:
	case errors.Is(err, recurrence.ErrInvalidInterval):
		verr.add("recurring.interval", "must be at least 1")
	case errors.Is(err, recurrence.ErrInvalidEndDate):
		verr.add("recurring.endDate", "must not be before startDate")
	default:
		verr.add("recurring", err.Error())
	}
}

// fieldPath "EventInput.location.coordinates.lat" biçimindeki yolu kök tip adı olmadan döndürür.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "timezone":
		return "must be a valid IANA timezone"
	case "gte", "lte":
		return "is out of range"
	case "email":
		return "must be a valid email address"
	}
	return "is invalid"
}
