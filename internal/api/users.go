package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pribylovaa/events-client/internal/models"
)

func (c *Client) Me(ctx context.Context) (models.User, error) {
	const op = "api.Me"

	var u userDTO
	if err := c.do(ctx, http.MethodGet, []string{"users", "me"}, nil, nil, &u); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return *userFromDTO(&u), nil
}
