// mock — офлайн-каталог событий: явная fallback-стратегия для публичных
// списков, когда удалённый API недоступен. Даты строятся относительно
// момента создания каталога.
package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pribylovaa/events-client/internal/fetch"
	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
)

// Имена списков, для которых у каталога есть данные.
const (
	ListUpcoming = "upcoming"
	ListAll      = "all"
	ListSearch   = "search"
)

const day = 24 * time.Hour

var users = []models.User{
	{ID: 1, Name: "John Smith", Email: "john.smith@example.com"},
	{ID: 2, Name: "Emma Johnson", Email: "emma.j@example.com"},
	{ID: 3, Name: "Michael Brown", Email: "michael.brown@example.com"},
}

type seed struct {
	title, description, location string
	start, end                   time.Duration
	capacity, registered         int
	creator                      int
	images                       []string
}

var seeds = []seed{
	{"Tech Innovation Summit 2025", "Keynotes, hands-on workshops and product reveals in AI, blockchain and emerging technologies.", "Innovation Center, San Francisco", 14 * day, 16 * day, 750, 421, 0, []string{"tech,conference", "innovation,future"}},
	{"Digital Art & NFT Exhibition", "Immersive exhibition of digital artists with live demonstrations and panels on NFTs.", "Modern Art Gallery, New York", 7 * day, 7*day + 8*time.Hour, 300, 189, 1, []string{"art,gallery", "digital,artwork"}},
	{"Wellness & Mindfulness Retreat", "Three-day retreat focused on mindfulness, meditation, yoga and holistic wellness.", "Serenity Gardens, Malibu", 21 * day, 23 * day, 50, 50, 2, []string{"wellness,yoga", "meditation,relax"}},
	{"Global Entrepreneurship Workshop", "Business models, funding strategies, scaling operations and global market entry.", "Business Hub, London", 10 * day, 11 * day, 200, 178, 0, []string{"business,meeting"}},
	{"Culinary Masterclass: World Fusion", "Hands-on masterclass on combining flavors from different cuisines into fusion dishes.", "Gourmet Kitchen Studio, Chicago", 5 * day, 5*day + 5*time.Hour, 30, 28, 1, []string{"food,cooking", "chef,cuisine"}},
	{"Sustainable Fashion Conference", "Innovative materials, circular economy models and ethical practices in fashion.", "Design Quarter, Milan", 30 * day, 31 * day, 400, 275, 2, []string{"fashion,style"}},
	{"Data Science & AI Bootcamp", "Five-day bootcamp from statistical analysis to machine learning with hands-on projects.", "Tech Academy, Austin", 15 * day, 20 * day, 100, 100, 0, []string{"data,code", "ai,machine"}},
	{"Urban Photography Walk", "Guided photography walk through iconic neighborhoods and hidden gems of the city.", "Downtown Arts District, Los Angeles", 3 * day, 3*day + 4*time.Hour, 25, 12, 1, []string{"city,urban"}},
	{"Space Exploration Symposium", "Presentations from scientists, astronauts and private space companies.", "Planetarium, Houston", 45 * day, 46 * day, 500, 317, 2, []string{"space,planet", "galaxy,stars"}},
	{"Virtual Reality Gaming Tournament", "VR gaming challenge with multiple games, skill levels and prizes for winners.", "Gaming Arena, Tokyo", 12 * day, 13 * day, 150, 143, 0, []string{"gaming,vr"}},
}

// Catalog — неизменяемый набор событий плюс источник текущего времени.
type Catalog struct {
	now    func() time.Time
	events []models.Event
}

// New строит каталог. now == nil означает time.Now.
func New(now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}

	base := now().UTC().Truncate(time.Second)
	events := make([]models.Event, 0, len(seeds))
	imageID := int64(1)

	for i, s := range seeds {
		creator := users[s.creator]

		ev := models.Event{
			ID:                int64(i + 1),
			Title:             s.title,
			Description:       s.description,
			Location:          s.location,
			StartTime:         base.Add(s.start),
			EndTime:           base.Add(s.end),
			MaxAttendees:      s.capacity,
			Creator:           &creator,
			RegistrationCount: s.registered,
			IsFull:            s.registered >= s.capacity,
		}

		for order, kw := range s.images {
			ev.Images = append(ev.Images, models.Image{
				ID:           imageID,
				URL:          "https://source.unsplash.com/random/800x600/?" + kw,
				DisplayOrder: order + 1,
				CreatedAt:    base,
			})
			imageID++
		}

		events = append(events, ev)
	}

	return &Catalog{now: now, events: events}
}

// Events возвращает копию каталога в исходном порядке.
func (c *Catalog) Events() []models.Event {
	return append([]models.Event(nil), c.events...)
}

// All — все события; порядок управляется sortBy/direction дескриптора.
func (c *Catalog) All(d paging.Descriptor) paging.Result[models.Event] {
	return paging.Slice(sorted(c.Events(), d), d)
}

// Upcoming — события с началом позже текущего момента, по возрастанию начала.
func (c *Catalog) Upcoming(d paging.Descriptor) paging.Result[models.Event] {
	now := c.now()

	var out []models.Event
	for _, ev := range c.events {
		if ev.StartTime.After(now) {
			out = append(out, ev)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })

	return paging.Slice(out, d)
}

// Search — регистронезависимое вхождение keyword в заголовок, описание или место.
// Пустой keyword совпадает со всеми событиями.
func (c *Catalog) Search(d paging.Descriptor) paging.Result[models.Event] {
	kw := strings.ToLower(strings.TrimSpace(d.Param("keyword")))

	var out []models.Event
	for _, ev := range c.events {
		if kw == "" ||
			strings.Contains(strings.ToLower(ev.Title), kw) ||
			strings.Contains(strings.ToLower(ev.Description), kw) ||
			strings.Contains(strings.ToLower(ev.Location), kw) {
			out = append(out, ev)
		}
	}

	return paging.Slice(out, d)
}

// Event — событие по id.
func (c *Catalog) Event(id int64) (models.Event, error) {
	for _, ev := range c.events {
		if ev.ID == id {
			return ev, nil
		}
	}

	return models.Event{}, fmt.Errorf("mock: event %d: %w", id, fetch.ErrNotFound)
}

// Wrap не меняет выборку: каталогу нечего запоминать.
func (c *Catalog) Wrap(_ string, f fetch.Fetcher[models.Event]) fetch.Fetcher[models.Event] {
	return f
}

// Fallback возвращает стратегию подмены для списка или nil, если данных для него нет.
func (c *Catalog) Fallback(list string) fetch.Fallback[models.Event] {
	var page func(paging.Descriptor) paging.Result[models.Event]

	switch list {
	case ListUpcoming:
		page = c.Upcoming
	case ListAll:
		page = c.All
	case ListSearch:
		page = c.Search
	default:
		return nil
	}

	return func(_ context.Context, d paging.Descriptor, _ error) (paging.Result[models.Event], error) {
		return page(d), nil
	}
}

// sorted упорядочивает события по sortBy (startTime, title, maxAttendees)
// и direction (asc по умолчанию). Неизвестный sortBy оставляет порядок каталога.
func sorted(events []models.Event, d paging.Descriptor) []models.Event {
	desc := strings.EqualFold(d.Param("direction"), "desc")

	var less func(a, b models.Event) bool
	switch d.Param("sortBy") {
	case "startTime":
		less = func(a, b models.Event) bool { return a.StartTime.Before(b.StartTime) }
	case "title":
		less = func(a, b models.Event) bool { return a.Title < b.Title }
	case "maxAttendees":
		less = func(a, b models.Event) bool { return a.MaxAttendees < b.MaxAttendees }
	default:
		return events
	}

	sort.SliceStable(events, func(i, j int) bool {
		if desc {
			return less(events[j], events[i])
		}

		return less(events[i], events[j])
	})

	return events
}
