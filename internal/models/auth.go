package models

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLen — минимальная длина пароля при регистрации.
const MinPasswordLen = 8

var emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)

// Credentials — форма входа.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize обрезает пробелы вокруг email. Пароль не трогаем.
func (c Credentials) Normalize() Credentials {
	c.Email = strings.TrimSpace(c.Email)
	return c
}

// Validate проверяет форму входа: email обязателен и похож на адрес, пароль обязателен.
func (c Credentials) Validate() error {
	var fields []FieldError

	fields = appendEmail(fields, c.Email)

	if c.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "Password is required"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

// SignUpForm — форма регистрации пользователя.
type SignUpForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f SignUpForm) Normalize() SignUpForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	return f
}

// Validate проверяет форму регистрации; пароль не короче MinPasswordLen символов.
func (f SignUpForm) Validate() error {
	var fields []FieldError

	if strings.TrimSpace(f.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required"})
	}

	fields = appendEmail(fields, f.Email)

	switch {
	case f.Password == "":
		fields = append(fields, FieldError{Field: "password", Message: "Password is required"})
	case utf8.RuneCountInString(f.Password) < MinPasswordLen:
		fields = append(fields, FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

func appendEmail(fields []FieldError, email string) []FieldError {
	switch {
	case email == "":
		return append(fields, FieldError{Field: "email", Message: "Email is required"})
	case !emailRe.MatchString(email):
		return append(fields, FieldError{Field: "email", Message: "Email is invalid"})
	default:
		return fields
	}
}
