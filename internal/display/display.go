// display — производные значения для отображения события: заполненность,
// признак «мест нет» и детерминированный выбор акцентного цвета по ключу.
// Все функции чистые.
package display

import (
	"math"
	"unicode/utf16"
)

// AccentBuckets — размер палитры карточек.
const AccentBuckets = 6

// Подписи доступности.
const (
	AvailabilityFull      = "full"
	AvailabilityAvailable = "available"
)

// AttendanceRatio — доля занятых мест в [0, 1].
// capacity <= 0 или registered <= 0 дают 0; перебор прижимается к 1.
func AttendanceRatio(registered, capacity int) float64 {
	if capacity <= 0 || registered <= 0 {
		return 0
	}

	r := float64(registered) / float64(capacity)
	if r > 1 {
		return 1
	}

	return r
}

// IsFull — registered >= capacity. Событие с нулевой вместимостью считается заполненным.
func IsFull(registered, capacity int) bool {
	return registered >= capacity
}

// AttendancePercent — ширина полосы заполненности в процентах, 0..100.
func AttendancePercent(registered, capacity int) int {
	return int(math.Round(AttendanceRatio(registered, capacity) * 100))
}

// SpotsLeft — сколько мест осталось (не меньше нуля).
func SpotsLeft(registered, capacity int) int {
	if left := capacity - registered; left > 0 {
		return left
	}

	return 0
}

// Availability — подпись доступности для карточки.
func Availability(registered, capacity int) string {
	if IsFull(registered, capacity) {
		return AvailabilityFull
	}

	return AvailabilityAvailable
}

// StyleBucket — сумма UTF-16 кодовых единиц key по модулю buckets.
// Один и тот же ключ всегда даёт один и тот же индекс; buckets <= 0 даёт 0.
func StyleBucket(key string, buckets int) int {
	if buckets <= 0 {
		return 0
	}

	sum := 0
	for _, u := range utf16.Encode([]rune(key)) {
		sum += int(u)
	}

	return sum % buckets
}

// Card — всё производное, что нужно карточке события.
type Card struct {
	Ratio        float64 `json:"attendance_ratio"`
	Percent      int     `json:"attendance_percent"`
	Full         bool    `json:"is_full"`
	SpotsLeft    int     `json:"spots_left"`
	Availability string  `json:"availability"`
	Accent       int     `json:"accent"`
}

// NewCard вычисляет Card. Акцент выбирается по заголовку события.
func NewCard(title string, registered, capacity int) Card {
	return Card{
		Ratio:        AttendanceRatio(registered, capacity),
		Percent:      AttendancePercent(registered, capacity),
		Full:         IsFull(registered, capacity),
		SpotsLeft:    SpotsLeft(registered, capacity),
		Availability: Availability(registered, capacity),
		Accent:       StyleBucket(title, AccentBuckets),
	}
}
