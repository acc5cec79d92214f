package paging

import "strconv"

// DefaultMaxVisible — сколько кнопок страниц показывается без усечения.
const DefaultMaxVisible = 5

// InnerWindow — максимум страниц вокруг текущей при усечении (current-1 .. current+1).
const InnerWindow = 3

// Marker — элемент строки пагинации: номер страницы (0-based) либо многоточие.
//
// Для многоточия Page == -1, чтобы нулевое значение Marker{} оставалось
// корректной ссылкой на первую страницу.
type Marker struct {
	Page     int  `json:"page"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageMarker возвращает маркер конкретной страницы.
func PageMarker(page int) Marker {
	return Marker{Page: page}
}

// EllipsisMarker возвращает маркер пропуска.
func EllipsisMarker() Marker {
	return Marker{Page: -1, Ellipsis: true}
}

// String — человекочитаемая подпись (номер страницы с единицы).
func (m Marker) String() string {
	if m.Ellipsis {
		return "..."
	}

	return strconv.Itoa(m.Page + 1)
}

// Window вычисляет последовательность маркеров для кнопок пагинации.
//
// Правила:
//   - total <= maxVisible — все страницы подряд, без многоточий;
//   - иначе первая (0) и последняя (total-1) страницы присутствуют всегда,
//     между ними внутреннее окно до InnerWindow страниц вокруг current
//     (не больше maxVisible-2),
//     прижатое к диапазону [1, total-2];
//   - многоточие ставится только там, где между соседними маркерами есть разрыв.
//
// maxVisible <= 0 трактуется как DefaultMaxVisible. current за пределами
// [0, total-1] прижимается к границе; total <= 0 даёт пустое окно.
func Window(current, total, maxVisible int) []Marker {
	if total <= 0 {
		return []Marker{}
	}

	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}

	current = clamp(current, 0, total-1)

	if total <= maxVisible {
		out := make([]Marker, 0, total)
		for i := 0; i < total; i++ {
			out = append(out, PageMarker(i))
		}

		return out
	}

	out := make([]Marker, 0, maxVisible+2)
	out = append(out, PageMarker(0))

	// Внутреннее окно: total > maxVisible гарантирует, что inner <= total-3
	// и окно всегда помещается в [1, total-2].
	inner := min(InnerWindow, maxVisible-2)
	if inner <= 0 {
		if total > 2 {
			out = append(out, EllipsisMarker())
		}

		return append(out, PageMarker(total-1))
	}

	start := current - (inner-1)/2
	if start < 1 {
		start = 1
	}

	end := start + inner - 1
	if end > total-2 {
		end = total - 2
		start = end - inner + 1
	}

	if start > 1 {
		out = append(out, EllipsisMarker())
	}

	for i := start; i <= end; i++ {
		out = append(out, PageMarker(i))
	}

	if end < total-2 {
		out = append(out, EllipsisMarker())
	}

	return append(out, PageMarker(total-1))
}

// Controls — полная модель строки пагинации: маркеры и стрелки назад/вперёд.
type Controls struct {
	Current int      `json:"current"`
	Total   int      `json:"total"`
	Markers []Marker `json:"markers"`
	HasPrev bool     `json:"has_prev"`
	HasNext bool     `json:"has_next"`
	Prev    int      `json:"prev"`
	Next    int      `json:"next"`
}

// NewControls собирает Controls для текущей страницы.
// Prev/Next указывают на соседние страницы и совпадают с Current на границах.
func NewControls(current, total, maxVisible int) Controls {
	c := Controls{
		Total:   total,
		Markers: Window(current, total, maxVisible),
	}

	if total <= 0 {
		return c
	}

	c.Current = clamp(current, 0, total-1)
	c.HasPrev = c.Current > 0
	c.HasNext = c.Current < total-1
	c.Prev = c.Current
	c.Next = c.Current

	if c.HasPrev {
		c.Prev = c.Current - 1
	}

	if c.HasNext {
		c.Next = c.Current + 1
	}

	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
