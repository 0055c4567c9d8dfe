package api

import (
	"context"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignupRequest represents an institution signup request
type SignupRequest struct {
	InstitutionName string `json:"institutionName" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	Phone           string `json:"phone" validate:"omitempty,e164"`
}

// AuthResponse represents a signup, login, or refresh response. Deployments
// differ in which of these fields they fill, so every candidate the session
// derivation looks at is present.
type AuthResponse struct {
	AccessToken   string       `json:"accessToken"`
	InstitutionID string       `json:"institutionId"`
	Role          string       `json:"role"`
	ID            string       `json:"id"`
	Institution   *Institution `json:"institution"`
	User          *AuthUser    `json:"user"`
}

// Institution represents the institution object nested in auth responses
type Institution struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthUser represents the user object nested in auth responses
type AuthUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	InstitutionID string `json:"institutionId"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := c.post(ctx, "/auth/login", req, &authResp); err != nil {
		return nil, err
	}

	return &authResp, nil
}

// Signup registers a new institution account
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := c.post(ctx, "/auth/signup", req, &authResp); err != nil {
		return nil, err
	}

	return &authResp, nil
}

// Refresh renews the session from the refresh cookie. No body is sent; the
// cookie jar carries the refresh token.
func (c *Client) Refresh(ctx context.Context) (*AuthResponse, error) {
	var authResp AuthResponse
	if err := c.post(ctx, "/auth/refresh", nil, &authResp); err != nil {
		return nil, err
	}

	return &authResp, nil
}

// Logout invalidates the session on the server
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}
