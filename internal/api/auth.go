package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pribylovaa/events-client/internal/models"
)

type authRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponseDTO struct {
	Token string `json:"token"`
}

// Login обменивает учётные данные на JWT. Неверный пароль — fetch.ErrUnauthorized.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	const op = "api.Login"

	token, err := c.authenticate(ctx, []string{"auth", "login"}, authRequestDTO{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// SignUp регистрирует пользователя и сразу выдаёт JWT. Занятый email — ErrConflict.
func (c *Client) SignUp(ctx context.Context, form models.SignUpForm) (string, error) {
	const op = "api.SignUp"

	token, err := c.authenticate(ctx, []string{"auth", "register"}, signUpDTO{Name: form.Name, Email: form.Email, Password: form.Password})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// authenticate не пересылает текущий токен сессии: вход идёт с чистого листа.
func (c *Client) authenticate(ctx context.Context, path []string, body any) (string, error) {
	var resp authResponseDTO
	if err := c.do(WithAuthToken(ctx, ""), http.MethodPost, path, nil, body, &resp); err != nil {
		return "", err
	}

	if resp.Token == "" {
		return "", fmt.Errorf("%w: empty token", ErrUnavailable)
	}

	return resp.Token, nil
}
