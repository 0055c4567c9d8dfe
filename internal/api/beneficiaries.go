package api

import (
	"context"
	"fmt"
	"time"
)

// Beneficiary represents an aid recipient registered with an institution
type Beneficiary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NationalID string    `json:"nationalId"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	FamilySize int       `json:"familySize"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateBeneficiaryRequest represents a request to register a beneficiary
type CreateBeneficiaryRequest struct {
	Name       string `json:"name" validate:"required"`
	NationalID string `json:"nationalId" validate:"required"`
	Phone      string `json:"phone" validate:"omitempty,e164"`
	Address    string `json:"address"`
	FamilySize int    `json:"familySize" validate:"gte=1"`
	Notes      string `json:"notes"`
}

// ListBeneficiariesResponse represents a page of beneficiaries
type ListBeneficiariesResponse struct {
	Beneficiaries []Beneficiary `json:"beneficiaries"`
	TotalCount    int           `json:"totalCount"`
	Page          int           `json:"page"`
	PageSize      int           `json:"pageSize"`
}

// ListBeneficiaries retrieves a page of the institution's beneficiaries
func (c *Client) ListBeneficiaries(ctx context.Context, institutionID string, page, pageSize int) (*ListBeneficiariesResponse, error) {
	path := fmt.Sprintf("/institutions/%s/beneficiaries?page=%d&pageSize=%d", institutionID, page, pageSize)

	var list ListBeneficiariesResponse
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// GetBeneficiary retrieves a beneficiary by ID
func (c *Client) GetBeneficiary(ctx context.Context, institutionID, beneficiaryID string) (*Beneficiary, error) {
	path := fmt.Sprintf("/institutions/%s/beneficiaries/%s", institutionID, beneficiaryID)

	var b Beneficiary
	if err := c.get(ctx, path, &b); err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBeneficiary registers a new beneficiary with the institution
func (c *Client) CreateBeneficiary(ctx context.Context, institutionID string, req CreateBeneficiaryRequest) (*Beneficiary, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/beneficiaries", institutionID)

	var b Beneficiary
	if err := c.post(ctx, path, req, &b); err != nil {
		return nil, err
	}

	return &b, nil
}

// UpdateBeneficiary updates an existing beneficiary
func (c *Client) UpdateBeneficiary(ctx context.Context, institutionID, beneficiaryID string, req CreateBeneficiaryRequest) (*Beneficiary, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/beneficiaries/%s", institutionID, beneficiaryID)

	var b Beneficiary
	if err := c.put(ctx, path, req, &b); err != nil {
		return nil, err
	}

	return &b, nil
}

// DeleteBeneficiary removes a beneficiary from the institution
func (c *Client) DeleteBeneficiary(ctx context.Context, institutionID, beneficiaryID string) error {
	path := fmt.Sprintf("/institutions/%s/beneficiaries/%s", institutionID, beneficiaryID)
	return c.delete(ctx, path)
}
