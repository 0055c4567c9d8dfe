package api

import (
	"context"
	"fmt"
	"time"
)

// Post represents a public announcement published by an institution
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	ImageURL    string     `json:"imageUrl"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Post status values
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// CreatePostRequest represents a request to create or update a post
type CreatePostRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"omitempty,url"`
}

// ListPostsResponse represents a page of posts
type ListPostsResponse struct {
	Posts      []Post `json:"posts"`
	TotalCount int    `json:"totalCount"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

// ListPosts retrieves a page of the institution's posts
func (c *Client) ListPosts(ctx context.Context, institutionID string, page, pageSize int) (*ListPostsResponse, error) {
	path := fmt.Sprintf("/institutions/%s/posts?page=%d&pageSize=%d", institutionID, page, pageSize)

	var list ListPostsResponse
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// GetPost retrieves a post by ID
func (c *Client) GetPost(ctx context.Context, institutionID, postID string) (*Post, error) {
	path := fmt.Sprintf("/institutions/%s/posts/%s", institutionID, postID)

	var p Post
	if err := c.get(ctx, path, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// CreatePost creates a draft post
func (c *Client) CreatePost(ctx context.Context, institutionID string, req CreatePostRequest) (*Post, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/posts", institutionID)

	var p Post
	if err := c.post(ctx, path, req, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdatePost updates an existing post
func (c *Client) UpdatePost(ctx context.Context, institutionID, postID string, req CreatePostRequest) (*Post, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/institutions/%s/posts/%s", institutionID, postID)

	var p Post
	if err := c.put(ctx, path, req, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// PublishPost moves a draft post to published
func (c *Client) PublishPost(ctx context.Context, institutionID, postID string) (*Post, error) {
	path := fmt.Sprintf("/institutions/%s/posts/%s/publish", institutionID, postID)

	var p Post
	if err := c.post(ctx, path, nil, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// DeletePost removes a post
func (c *Client) DeletePost(ctx context.Context, institutionID, postID string) error {
	path := fmt.Sprintf("/institutions/%s/posts/%s", institutionID, postID)
	return c.delete(ctx, path)
}
