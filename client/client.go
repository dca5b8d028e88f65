// Package client is the thin HTTP wrapper the terminal UI talks
// through. Every non-2xx response surfaces as *APIError carrying the
// response body text.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/whizpalsdeveloper/NotesApp/dto"
	"github.com/whizpalsdeveloper/NotesApp/model"
)

// APIError is the uniform failure type for any non-success response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}

// NoteFilter mirrors the GET /notes query parameters.
type NoteFilter struct {
	Query    string
	DateFrom string
	DateTo   string
}

// ImageFile is one file for an image upload.
type ImageFile struct {
	Name    string
	Content io.Reader
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends the request and decodes a JSON response into out (when out
// is non-nil). Any non-2xx status becomes *APIError.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload interface{}) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) Health(ctx context.Context) error {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) ListNotes(ctx context.Context, filter NoteFilter) ([]model.Note, error) {
	params := url.Values{}
	if filter.Query != "" {
		params.Set("q", filter.Query)
	}
	if filter.DateFrom != "" {
		params.Set("date_from", filter.DateFrom)
	}
	if filter.DateTo != "" {
		params.Set("date_to", filter.DateTo)
	}

	path := "/notes"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	req, err := c.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	notes := []model.Note{}
	if err := c.do(req, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*model.Note, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var note model.Note
	if err := c.do(req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) CreateNote(ctx context.Context, title, content string) (*model.Note, error) {
	payload := dto.CreateNoteRequest{Title: title, Content: content}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/notes", payload)
	if err != nil {
		return nil, err
	}
	var note model.Note
	if err := c.do(req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, title, content *string) (*model.Note, error) {
	payload := dto.UpdateNoteRequest{Title: title, Content: content}
	req, err := c.newJSONRequest(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), payload)
	if err != nil {
		return nil, err
	}
	var note model.Note
	if err := c.do(req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	req, err := c.newJSONRequest(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) AddImages(ctx context.Context, id string, files []ImageFile) (*model.Note, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/notes/"+url.PathEscape(id)+"/images", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var note model.Note
	if err := c.do(req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) RemoveImage(ctx context.Context, id, ref string) (*model.Note, error) {
	params := url.Values{}
	params.Set("url", ref)

	req, err := c.newJSONRequest(ctx, http.MethodDelete,
		"/notes/"+url.PathEscape(id)+"/images?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	var note model.Note
	if err := c.do(req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}
