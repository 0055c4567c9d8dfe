package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Coupon represents an aid coupon issued to a beneficiary
type Coupon struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	RoundID       string     `json:"roundId"`
	BeneficiaryID string     `json:"beneficiaryId"`
	Amount        int        `json:"amount"`
	Status        string     `json:"status"`
	DeliveredAt   *time.Time `json:"deliveredAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Coupon status values
const (
	CouponStatusIssued    = "issued"
	CouponStatusDelivered = "delivered"
	CouponStatusRevoked   = "revoked"
)

// VerifyCouponRequest represents a delivery verification request
type VerifyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// CouponVerification represents the outcome of a delivery verification
type CouponVerification struct {
	Valid       bool         `json:"valid"`
	Message     string       `json:"message"`
	Coupon      *Coupon      `json:"coupon"`
	Beneficiary *Beneficiary `json:"beneficiary"`
}

// ListCouponsResponse represents a page of coupons
type ListCouponsResponse struct {
	Coupons    []Coupon `json:"coupons"`
	TotalCount int      `json:"totalCount"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
}

// ListCoupons retrieves a page of coupons, optionally filtered by round and status
func (c *Client) ListCoupons(ctx context.Context, institutionID, roundID, status string, page, pageSize int) (*ListCouponsResponse, error) {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("pageSize", fmt.Sprintf("%d", pageSize))
	if roundID != "" {
		q.Set("roundId", roundID)
	}
	if status != "" {
		q.Set("status", status)
	}

	path := fmt.Sprintf("/institutions/%s/coupons?%s", institutionID, q.Encode())

	var list ListCouponsResponse
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// VerifyCoupon marks a coupon as delivered after checking its code
func (c *Client) VerifyCoupon(ctx context.Context, institutionID, code string) (*CouponVerification, error) {
	req := VerifyCouponRequest{Code: code}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/coupons/verify", institutionID)

	var result CouponVerification
	if err := c.post(ctx, path, req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
