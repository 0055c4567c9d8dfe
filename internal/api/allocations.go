package api

import (
	"context"
	"fmt"
	"time"
)

// Allocation represents a coupon granted to a beneficiary within a round
type Allocation struct {
	ID            string    `json:"id"`
	RoundID       string    `json:"roundId"`
	BeneficiaryID string    `json:"beneficiaryId"`
	CouponCode    string    `json:"couponCode"`
	Amount        int       `json:"amount"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateAllocationRequest represents a request to allocate a coupon
type CreateAllocationRequest struct {
	BeneficiaryID string `json:"beneficiaryId" validate:"required"`
	Amount        int    `json:"amount" validate:"gte=1"`
}

// ListAllocationsResponse represents a page of allocations
type ListAllocationsResponse struct {
	Allocations []Allocation `json:"allocations"`
	TotalCount  int          `json:"totalCount"`
	Page        int          `json:"page"`
	PageSize    int          `json:"pageSize"`
}

// ListAllocations retrieves a page of a round's allocations
func (c *Client) ListAllocations(ctx context.Context, institutionID, roundID string, page, pageSize int) (*ListAllocationsResponse, error) {
	path := fmt.Sprintf("/institutions/%s/rounds/%s/allocations?page=%d&pageSize=%d", institutionID, roundID, page, pageSize)

	var list ListAllocationsResponse
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// CreateAllocation grants a coupon to a beneficiary within a round
func (c *Client) CreateAllocation(ctx context.Context, institutionID, roundID string, req CreateAllocationRequest) (*Allocation, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/rounds/%s/allocations", institutionID, roundID)

	var a Allocation
	if err := c.post(ctx, path, req, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// RevokeAllocation revokes a granted coupon
func (c *Client) RevokeAllocation(ctx context.Context, institutionID, roundID, allocationID string) error {
	path := fmt.Sprintf("/institutions/%s/rounds/%s/allocations/%s", institutionID, roundID, allocationID)
	return c.delete(ctx, path)
}
