package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
)

func (c *Client) listEvents(ctx context.Context, op string, path []string, d paging.Descriptor) (paging.Result[models.Event], error) {
	var page pagedResponse[eventDTO]
	if err := c.do(ctx, http.MethodGet, path, pageQuery(d), nil, &page); err != nil {
		return paging.Result[models.Event]{}, fmt.Errorf("%s: %w", op, err)
	}

	return toResult(page, eventFromDTO), nil
}

func (c *Client) ListEvents(ctx context.Context, d paging.Descriptor) (paging.Result[models.Event], error) {
	return c.listEvents(ctx, "api.ListEvents", []string{"events"}, d)
}

func (c *Client) UpcomingEvents(ctx context.Context, d paging.Descriptor) (paging.Result[models.Event], error) {
	return c.listEvents(ctx, "api.UpcomingEvents", []string{"events", "upcoming"}, d)
}

func (c *Client) SearchEvents(ctx context.Context, d paging.Descriptor) (paging.Result[models.Event], error) {
	return c.listEvents(ctx, "api.SearchEvents", []string{"events", "search"}, d)
}

func (c *Client) EventsByCreator(ctx context.Context, creatorID int64, d paging.Descriptor) (paging.Result[models.Event], error) {
	return c.listEvents(ctx, "api.EventsByCreator", []string{"events", "creator", idPath(creatorID)}, d)
}

func (c *Client) Event(ctx context.Context, id int64) (models.Event, error) {
	const op = "api.Event"

	var ev eventDTO
	if err := c.do(ctx, http.MethodGet, []string{"events", idPath(id)}, nil, nil, &ev); err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return eventFromDTO(ev), nil
}

func (c *Client) CreateEvent(ctx context.Context, form models.EventForm) (models.Event, error) {
	const op = "api.CreateEvent"

	var ev eventDTO
	if err := c.do(ctx, http.MethodPost, []string{"events"}, nil, formToDTO(form), &ev); err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return eventFromDTO(ev), nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, form models.EventForm) (models.Event, error) {
	const op = "api.UpdateEvent"

	var ev eventDTO
	if err := c.do(ctx, http.MethodPut, []string{"events", idPath(id)}, nil, formToDTO(form), &ev); err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return eventFromDTO(ev), nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	const op = "api.DeleteEvent"

	if err := c.do(ctx, http.MethodDelete, []string{"events", idPath(id)}, nil, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
