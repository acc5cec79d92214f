package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
)

// localDateTime — формат java.time.LocalDateTime без зоны.
const localDateTime = "2006-01-02T15:04:05"

// Timestamp — время в проводном формате API.
// Читает LocalDateTime (с дробной частью или без) и RFC 3339; пишет LocalDateTime в UTC.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(t.UTC().Format(localDateTime))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}

	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{time.RFC3339Nano, localDateTime + ".999999999", localDateTime} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("timestamp: unsupported format %q", s)
}

type userDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type imageDTO struct {
	ID           int64     `json:"id"`
	ImageURL     string    `json:"imageUrl"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    Timestamp `json:"createdAt"`
}

type eventDTO struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Location          string     `json:"location"`
	StartTime         Timestamp  `json:"startTime"`
	EndTime           Timestamp  `json:"endTime"`
	MaxAttendees      int        `json:"maxAttendees"`
	Creator           *userDTO   `json:"creator"`
	RegistrationCount int        `json:"registrationCount"`
	IsFull            bool       `json:"isFull"`
	Images            []imageDTO `json:"images"`
}

type registrationDTO struct {
	ID               int64     `json:"id"`
	User             *userDTO  `json:"user"`
	Event            *eventDTO `json:"event"`
	RegistrationTime Timestamp `json:"registrationTime"`
	Attended         bool      `json:"attended"`
}

type eventCreationDTO struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	StartTime    Timestamp `json:"startTime"`
	EndTime      Timestamp `json:"endTime"`
	MaxAttendees int       `json:"maxAttendees"`
}

type registrationRequestDTO struct {
	EventID int64 `json:"eventId"`
}

// pagedResponse — PagedResponseDTO апстрима.
type pagedResponse[T any] struct {
	Content       []T  `json:"content"`
	PageNumber    int  `json:"pageNumber"`
	PageSize      int  `json:"pageSize"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Last          bool `json:"last"`
}

// toResult переводит страницу апстрима в paging.Result, конвертируя элементы.
// Пустая страница за концом коллекции прижимается к последней (ClampPastEnd),
// остальные инварианты проверяет контроллер выборки.
func toResult[D, T any](p pagedResponse[D], conv func(D) T) paging.Result[T] {
	items := make([]T, 0, len(p.Content))
	for _, it := range p.Content {
		items = append(items, conv(it))
	}

	return paging.Result[T]{
		Items:      items,
		PageIndex:  p.PageNumber,
		PageSize:   p.PageSize,
		TotalItems: p.TotalElements,
		TotalPages: p.TotalPages,
	}.ClampPastEnd()
}

func userFromDTO(u *userDTO) *models.User {
	if u == nil {
		return nil
	}

	return &models.User{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

func eventFromDTO(e eventDTO) models.Event {
	out := models.Event{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		Location:          e.Location,
		StartTime:         e.StartTime.Time,
		EndTime:           e.EndTime.Time,
		MaxAttendees:      e.MaxAttendees,
		Creator:           userFromDTO(e.Creator),
		RegistrationCount: e.RegistrationCount,
		IsFull:            e.IsFull,
	}

	if len(e.Images) > 0 {
		out.Images = make([]models.Image, 0, len(e.Images))
		for _, img := range e.Images {
			out.Images = append(out.Images, models.Image{
				ID:           img.ID,
				URL:          img.ImageURL,
				DisplayOrder: img.DisplayOrder,
				CreatedAt:    img.CreatedAt.Time,
			})
		}
	}

	return out
}

func registrationFromDTO(r registrationDTO) models.Registration {
	out := models.Registration{
		ID:           r.ID,
		User:         userFromDTO(r.User),
		RegisteredAt: r.RegistrationTime.Time,
		Attended:     r.Attended,
	}

	if r.Event != nil {
		ev := eventFromDTO(*r.Event)
		out.Event = &ev
	}

	return out
}

func formToDTO(f models.EventForm) eventCreationDTO {
	return eventCreationDTO{
		Title:        f.Title,
		Description:  f.Description,
		Location:     f.Location,
		StartTime:    Timestamp{f.StartTime},
		EndTime:      Timestamp{f.EndTime},
		MaxAttendees: f.MaxAttendees,
	}
}

func decodeJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
