package models

import (
	"errors"
	"strings"
	"time"
)

// ErrValidation — ошибка клиентской валидации формы.
// Формируется до любого обращения к API и в контроллер выборки не попадает.
var ErrValidation = errors.New("validation failed")

// FieldError — нарушение по одному полю.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError — набор нарушений формы.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// EventForm — данные формы создания/редактирования события.
type EventForm struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	MaxAttendees int       `json:"max_attendees"`
}

// Normalize обрезает пробелы в текстовых полях.
func (f EventForm) Normalize() EventForm {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Location = strings.TrimSpace(f.Location)

	return f
}

// Validate проверяет форму:
//   - заголовок обязателен;
//   - начало и конец обязательны, конец не раньше начала;
//   - вместимость не меньше 1.
//
// Ошибка — *ValidationError (errors.Is(err, ErrValidation) == true) со всеми нарушениями.
func (f EventForm) Validate() error {
	var fields []FieldError

	if strings.TrimSpace(f.Title) == "" {
		fields = append(fields, FieldError{Field: "title", Message: "Title is required"})
	}

	if f.StartTime.IsZero() {
		fields = append(fields, FieldError{Field: "start_time", Message: "Start time is required"})
	}

	if f.EndTime.IsZero() {
		fields = append(fields, FieldError{Field: "end_time", Message: "End time is required"})
	}

	if !f.StartTime.IsZero() && !f.EndTime.IsZero() && f.EndTime.Before(f.StartTime) {
		fields = append(fields, FieldError{Field: "end_time", Message: "End date cannot be earlier than start date"})
	}

	if f.MaxAttendees < 1 {
		fields = append(fields, FieldError{Field: "max_attendees", Message: "Max attendees must be at least 1"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// FormFromEvent заполняет форму редактирования текущими значениями события.
func FormFromEvent(e Event) EventForm {
	return EventForm{
		Title:        e.Title,
		Description:  e.Description,
		Location:     e.Location,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		MaxAttendees: e.MaxAttendees,
	}
}
