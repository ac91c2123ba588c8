package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/models"
	"github.com/mohsen-hassani/manuscript-workbench/internal/common"
)

// HTTPClient is the production Client implementation over net/http.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient returns a Client talking to the REST API at baseURL
// (e.g. "https://host/api"). Local vault I/O has no timeout, but remote calls
// go through a generously bounded transport.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *HTTPClient) SetToken(token string) { c.token = token }

// Token returns the currently installed bearer token, if any.
func (c *HTTPClient) Token() string { return c.token }

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// apiError maps well-known HTTP statuses onto sentinel errors so callers can
// branch with errors.Is.
func apiError(resp *http.Response) error {
	detail := struct {
		Detail string `json:"detail"`
	}{}
	_ = json.NewDecoder(resp.Body).Decode(&detail)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", resp.Status, common.ErrorUnauthorized)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", detail.Detail, common.ErrVersionConflict)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", resp.Status, common.ErrorNotFound)
	}
	if detail.Detail != "" {
		return fmt.Errorf("server error: %s (%s)", detail.Detail, resp.Status)
	}
	return fmt.Errorf("server error: %s", resp.Status)
}

// doJSON executes req and decodes a 2xx JSON response into target (when
// target is non-nil).
func (c *HTTPClient) doJSON(req *http.Request, target any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.doJSON(req, &token); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	c.token = token.AccessToken
	return token.AccessToken, nil
}

func (c *HTTPClient) GetProject(ctx context.Context, projectID int64) (*models.Project, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", projectID), nil)
	if err != nil {
		return nil, err
	}

	// The project detail endpoint nests the project next to its members.
	var payload struct {
		Project models.Project `json:"project"`
	}
	if err := c.doJSON(req, &payload); err != nil {
		return nil, fmt.Errorf("fetching project %d: %w", projectID, err)
	}
	return &payload.Project, nil
}

func (c *HTTPClient) ListFiles(ctx context.Context, projectID int64) ([]models.RemoteFile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/files", projectID), nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Files []models.RemoteFile `json:"files"`
		Total int                 `json:"total"`
	}
	if err := c.doJSON(req, &payload); err != nil {
		return nil, fmt.Errorf("listing files of project %d: %w", projectID, err)
	}
	return payload.Files, nil
}

func (c *HTTPClient) GetFile(ctx context.Context, projectID, fileID int64) (*models.RemoteFile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/files/%d", projectID, fileID), nil)
	if err != nil {
		return nil, err
	}

	var file models.RemoteFile
	if err := c.doJSON(req, &file); err != nil {
		return nil, fmt.Errorf("fetching file %d: %w", fileID, err)
	}
	return &file, nil
}

func (c *HTTPClient) DownloadFile(ctx context.Context, projectID, fileID int64) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/files/%d/download", projectID, fileID), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading file %d: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading download of file %d: %w", fileID, err)
	}
	return content, nil
}

func (c *HTTPClient) CreateFile(ctx context.Context, projectID int64, filename, content string) (*models.RemoteFile, error) {
	payload, err := json.Marshal(map[string]string{"filename": filename, "content": content})
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/projects/%d/files/create", projectID), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var file models.RemoteFile
	if err := c.doJSON(req, &file); err != nil {
		return nil, fmt.Errorf("creating file %s: %w", filename, err)
	}
	return &file, nil
}

func (c *HTTPClient) UpdateFile(ctx context.Context, projectID, fileID int64, filename string, content []byte, version int64) (*models.RemoteFile, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := mw.WriteField("version", strconv.FormatInt(version, 10)); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/projects/%d/files/%d", projectID, fileID), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var file models.RemoteFile
	if err := c.doJSON(req, &file); err != nil {
		return nil, fmt.Errorf("updating file %d at version %d: %w", fileID, version, err)
	}
	return &file, nil
}
