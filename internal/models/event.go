// models — доменные сущности BFF в том виде, в котором они отдаются браузеру.
// Проводные DTO удалённого API и конвертеры живут в internal/api.
package models

import "time"

type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type Image struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type Event struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Location          string    `json:"location"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	MaxAttendees      int       `json:"max_attendees"`
	Creator           *User     `json:"creator,omitempty"`
	RegistrationCount int       `json:"registration_count"`
	IsFull            bool      `json:"is_full"`
	Images            []Image   `json:"images,omitempty"`
}

// Registration — билет пользователя на событие.
type Registration struct {
	ID           int64     `json:"id"`
	User         *User     `json:"user,omitempty"`
	Event        *Event    `json:"event,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	Attended     bool      `json:"attended"`
}
