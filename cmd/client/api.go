package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"multipart-uploader/internal/domain/dto"
)

// apiClient talks to the upload service. File bytes never go through it.
type apiClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func newAPIClient(baseURL string, httpClient *http.Client) *apiClient {
	return &apiClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// apiError is the decoded body of a non-2xx response.
type apiError struct {
	HTTPStatus int
	Code       string            `json:"error"`
	Message    string            `json:"message"`
	Errors     map[string]string `json:"errors"`
}

func (e *apiError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP %d", e.HTTPStatus)
	if e.Code != "" {
		fmt.Fprintf(&b, " %s", e.Code)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	for field, msg := range e.Errors {
		fmt.Fprintf(&b, "; %s %s", field, msg)
	}
	return b.String()
}

func (c *apiClient) Login(ctx context.Context, username, password string) error {
	form := url.Values{"username": {username}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out dto.LoginResponseDTO
	if err := c.do(req, &out); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	c.token = out.Token
	return nil
}

func (c *apiClient) Initiate(ctx context.Context, in dto.MultipartUploadRequestDTO) (*dto.MultipartUploadResponseDTO, error) {
	var out dto.APIResponse[*dto.MultipartUploadResponseDTO]
	if err := c.postJSON(ctx, "/files-upload/generate-multipart-urls", in, &out); err != nil {
		return nil, fmt.Errorf("initiate upload: %w", err)
	}
	if out.Data == nil {
		return nil, fmt.Errorf("initiate upload: empty response")
	}
	return out.Data, nil
}

func (c *apiClient) Complete(ctx context.Context, in dto.CompleteUploadRequestDTO) error {
	var out dto.APIResponse[any]
	if err := c.postJSON(ctx, "/files-upload/complete-multiparts-upload", in, &out); err != nil {
		return fmt.Errorf("complete upload: %w", err)
	}
	return nil
}

func (c *apiClient) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.do(req, out)
}

func (c *apiClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := &apiError{HTTPStatus: resp.StatusCode}
		if jerr := json.Unmarshal(body, apiErr); jerr != nil {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}
	return json.Unmarshal(body, out)
}
