package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"pixshelf/internal/domain"
)

// Listing is one folder's children, both categories delivered in a single
// response so the snapshot can be replaced in one update.
type Listing struct {
	Folders []domain.Folder `json:"folder"`
	Images  []domain.Image  `json:"images"`
}

// ListFolder fetches the children of folderID, or of the root when folderID
// is empty.
func (c *Client) ListFolder(ctx context.Context, folderID string) (*Listing, error) {
	var query url.Values
	if folderID != "" {
		query = url.Values{"folderId": {folderID}}
	}
	var resp struct {
		Data Listing `json:"data"`
	}
	if err := c.getJSON(ctx, "/folder", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to list folder: %w", err)
	}
	return &resp.Data, nil
}

// CreateFolder creates a folder under parent, or at the root when parent is
// nil. The created folder comes back with its server-assigned ID.
func (c *Client) CreateFolder(ctx context.Context, name string, parent *string) (*domain.Folder, error) {
	body := struct {
		Name   string  `json:"name"`
		Parent *string `json:"parent"`
	}{Name: name, Parent: parent}

	var resp struct {
		Data domain.Folder `json:"data"`
	}
	if err := c.postJSON(ctx, "/folder/create", body, &resp); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return &resp.Data, nil
}

// FileUpload is one local file headed for the server.
type FileUpload struct {
	Name string
	Data io.Reader
}

// UploadImages sends the whole batch as one multipart request, a repeated
// "images" field per file. The server answers with one created Image per
// uploaded file, in order.
func (c *Client) UploadImages(ctx context.Context, files []FileUpload) ([]domain.Image, error) {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		for _, f := range files {
			part, err := writer.CreateFormFile("images", f.Name)
			if err != nil {
				pw.CloseWithError(err)
				return
			}
			if _, err := io.Copy(part, f.Data); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/image/new", nil), pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp struct {
		Data []domain.Image `json:"data"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to upload images: %w", err)
	}
	return resp.Data, nil
}

// SearchImages fetches images whose names match term, across all folders.
func (c *Client) SearchImages(ctx context.Context, term string) ([]domain.Image, error) {
	var resp struct {
		Data []domain.Image `json:"data"`
	}
	query := url.Values{"image": {term}}
	if err := c.getJSON(ctx, "/image/search", query, &resp); err != nil {
		return nil, fmt.Errorf("failed to search images: %w", err)
	}
	return resp.Data, nil
}

// FetchImage downloads one image's bytes by ID, returning the payload and its
// content type.
func (c *Client) FetchImage(ctx context.Context, id string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/image/"+url.PathEscape(id), nil), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer closeWithLog(resp.Body, "image body", c.logger)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", classify(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
