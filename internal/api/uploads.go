package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// UploadResponse represents a stored file
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload stores a file and returns its public URL. Post images go through
// here before CreatePost.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/uploads", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.prepare(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Message: ServerUnreachableMessage, Cause: err}
	}

	var uploaded UploadResponse
	if err := c.parseResponse(resp, &uploaded); err != nil {
		return nil, err
	}

	return &uploaded, nil
}
