package api

import (
	"context"
	"fmt"
	"time"
)

// Employee represents an institution staff account
type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateEmployeeRequest represents a request to create a staff account
type CreateEmployeeRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
	Role     string `json:"role" validate:"required,oneof=ADMIN DISTRIBUTER PUBLISHER DELIVERER"`
}

// UpdateEmployeeRequest represents a request to update a staff account
type UpdateEmployeeRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"omitempty,e164"`
	Role  string `json:"role" validate:"required,oneof=ADMIN DISTRIBUTER PUBLISHER DELIVERER"`
}

// ListEmployeesResponse represents a page of employees
type ListEmployeesResponse struct {
	Employees  []Employee `json:"employees"`
	TotalCount int        `json:"totalCount"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
}

// ListEmployees retrieves a page of the institution's staff accounts
func (c *Client) ListEmployees(ctx context.Context, institutionID string, page, pageSize int) (*ListEmployeesResponse, error) {
	path := fmt.Sprintf("/institutions/%s/employees?page=%d&pageSize=%d", institutionID, page, pageSize)

	var list ListEmployeesResponse
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// GetEmployee retrieves a single staff account
func (c *Client) GetEmployee(ctx context.Context, institutionID, employeeID string) (*Employee, error) {
	path := fmt.Sprintf("/institutions/%s/employees/%s", institutionID, employeeID)

	var e Employee
	if err := c.get(ctx, path, &e); err != nil {
		return nil, err
	}

	return &e, nil
}

// CreateEmployee creates a staff account with the given role
func (c *Client) CreateEmployee(ctx context.Context, institutionID string, req CreateEmployeeRequest) (*Employee, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/employees", institutionID)

	var e Employee
	if err := c.post(ctx, path, req, &e); err != nil {
		return nil, err
	}

	return &e, nil
}

// UpdateEmployee updates a staff account, including its role
func (c *Client) UpdateEmployee(ctx context.Context, institutionID, employeeID string, req UpdateEmployeeRequest) (*Employee, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/employees/%s", institutionID, employeeID)

	var e Employee
	if err := c.put(ctx, path, req, &e); err != nil {
		return nil, err
	}

	return &e, nil
}

// DeleteEmployee removes a staff account
func (c *Client) DeleteEmployee(ctx context.Context, institutionID, employeeID string) error {
	path := fmt.Sprintf("/institutions/%s/employees/%s", institutionID, employeeID)
	return c.delete(ctx, path)
}
