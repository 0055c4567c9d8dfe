package api

import (
	"context"
	"fmt"
	"time"
)

// Round represents a distribution round (one aid campaign window)
type Round struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Round status values
const (
	RoundStatusPlanned = "planned"
	RoundStatusActive  = "active"
	RoundStatusClosed  = "closed"
)

// CreateRoundRequest represents a request to create a distribution round
type CreateRoundRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	EndsAt      time.Time `json:"endsAt" validate:"required,gtfield=StartsAt"`
}

// ListRoundsResponse represents a page of rounds
type ListRoundsResponse struct {
	Rounds     []Round `json:"rounds"`
	TotalCount int     `json:"totalCount"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
}

// ListRounds retrieves a page of the institution's distribution rounds
func (c *Client) ListRounds(ctx context.Context, institutionID string, page, pageSize int) (*ListRoundsResponse, error) {
	path := fmt.Sprintf("/institutions/%s/rounds?page=%d&pageSize=%d", institutionID, page, pageSize)

	var list ListRoundsResponse
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// GetRound retrieves a round by ID
func (c *Client) GetRound(ctx context.Context, institutionID, roundID string) (*Round, error) {
	path := fmt.Sprintf("/institutions/%s/rounds/%s", institutionID, roundID)

	var r Round
	if err := c.get(ctx, path, &r); err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRound creates a new distribution round
func (c *Client) CreateRound(ctx context.Context, institutionID string, req CreateRoundRequest) (*Round, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/rounds", institutionID)

	var r Round
	if err := c.post(ctx, path, req, &r); err != nil {
		return nil, err
	}

	return &r, nil
}

// UpdateRoundRequest represents a request to update a round's details
type UpdateRoundRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	EndsAt      time.Time `json:"endsAt" validate:"required,gtfield=StartsAt"`
}

// UpdateRound updates a round's details
func (c *Client) UpdateRound(ctx context.Context, institutionID, roundID string, req UpdateRoundRequest) (*Round, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/rounds/%s", institutionID, roundID)

	var r Round
	if err := c.put(ctx, path, req, &r); err != nil {
		return nil, err
	}

	return &r, nil
}

// CloseRound moves a round to closed; no further allocations are accepted
func (c *Client) CloseRound(ctx context.Context, institutionID, roundID string) (*Round, error) {
	path := fmt.Sprintf("/institutions/%s/rounds/%s/close", institutionID, roundID)

	var r Round
	if err := c.post(ctx, path, nil, &r); err != nil {
		return nil, err
	}

	return &r, nil
}

// DeleteRound removes a planned round
func (c *Client) DeleteRound(ctx context.Context, institutionID, roundID string) error {
	path := fmt.Sprintf("/institutions/%s/rounds/%s", institutionID, roundID)
	return c.delete(ctx, path)
}
