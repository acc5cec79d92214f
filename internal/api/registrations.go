package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pribylovaa/events-client/internal/models"
	"github.com/pribylovaa/events-client/internal/paging"
)

func (c *Client) Register(ctx context.Context, userID, eventID int64) (models.Registration, error) {
	const op = "api.Register"

	var reg registrationDTO
	body := registrationRequestDTO{EventID: eventID}
	if err := c.do(ctx, http.MethodPost, []string{"registrations", "user", idPath(userID)}, nil, body, &reg); err != nil {
		return models.Registration{}, fmt.Errorf("%s: %w", op, err)
	}

	return registrationFromDTO(reg), nil
}

func (c *Client) Registrations(ctx context.Context, userID int64, d paging.Descriptor) (paging.Result[models.Registration], error) {
	const op = "api.Registrations"

	var page pagedResponse[registrationDTO]
	if err := c.do(ctx, http.MethodGet, []string{"registrations", "user", idPath(userID)}, pageQuery(d), nil, &page); err != nil {
		return paging.Result[models.Registration]{}, fmt.Errorf("%s: %w", op, err)
	}

	return toResult(page, registrationFromDTO), nil
}
