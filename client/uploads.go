package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/campushub/campushub/models"
)

// EventsService extends the events resource with image upload.
type EventsService struct {
	Resource[*models.Event]
}

// BlogsService extends the blogs resource with the generic upload endpoint.
type BlogsService struct {
	Resource[*models.BlogPost]
}

// UploadResponse is the upload endpoints' response.
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadImage uploads an event image and returns its served URL.
func (s *EventsService) UploadImage(ctx context.Context, filename string, file io.Reader) (*UploadResponse, error) {
	var out UploadResponse
	err := s.client.doMultipart(ctx, s.url("/upload-event-image"), nil, "image", filename, file, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload posts a file to the generic upload endpoint with a prefix field
// selecting the target folder.
func (s *BlogsService) Upload(ctx context.Context, prefix, filename string, file io.Reader) (*UploadResponse, error) {
	var out UploadResponse
	err := s.client.doMultipart(ctx, s.base+"/uploads", map[string]string{"prefix": prefix}, "file", filename, file, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// doMultipart performs a multipart/form-data POST with optional form fields
// and one optional file part.
func (c *Client) doMultipart(ctx context.Context, url string, fields map[string]string, fileField, filename string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return err
		}
	}
	if file != nil {
		part, err := writer.CreateFormFile(fileField, filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, out)
}
