package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/siap-parepare/siap-cli/internal/client/config"
	"github.com/siap-parepare/siap-cli/internal/client/models"
	"github.com/siap-parepare/siap-cli/internal/common"
	"github.com/siap-parepare/siap-cli/internal/logging"
)

// HTTPClient is the production Client implementation. The token is
// mutated only between requests on the single interactive goroutine,
// so no locking is needed around it.
type HTTPClient struct {
	client    *http.Client
	log       logging.Logger
	baseURL   string
	token     string
	userAgent string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the API at cfg.ServerAddress.
func NewHTTPClient(cfg *config.Config, log logging.Logger) (*HTTPClient, error) {
	if _, err := url.Parse(cfg.ServerAddress); err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", cfg.ServerAddress, err)
	}

	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &HTTPClient{
		client:    client,
		log:       log,
		baseURL:   cfg.ServerAddress,
		userAgent: "SIAP-CLI/1.0",
	}, nil
}

// SetToken attaches token to all subsequent requests.
func (h *HTTPClient) SetToken(token string) {
	h.token = token
}

// ClearToken removes the token from all subsequent requests.
func (h *HTTPClient) ClearToken() {
	h.token = ""
}

func (h *HTTPClient) Login(ctx context.Context, form models.LoginForm) (*AuthResponse, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/auth/login", form)
	if err != nil {
		return nil, err
	}
	var auth AuthResponse
	if err := h.parseResponse(resp, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (h *HTTPClient) Register(ctx context.Context, form models.RegisterForm) (*AuthResponse, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/auth/register", form)
	if err != nil {
		return nil, err
	}
	var auth AuthResponse
	if err := h.parseResponse(resp, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

func (h *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/auth/user", nil)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := h.parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *HTTPClient) ListFiles(ctx context.Context) ([]models.ArchiveRecord, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/files", nil)
	if err != nil {
		return nil, err
	}
	var records []models.ArchiveRecord
	if err := h.parseResponse(resp, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (h *HTTPClient) GetFile(ctx context.Context, id string) (*models.ArchiveRecord, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/files/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var record models.ArchiveRecord
	if err := h.parseResponse(resp, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (h *HTTPClient) CreateFile(ctx context.Context, form models.ArchiveForm) (*models.ArchiveRecord, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/files", form)
	if err != nil {
		return nil, err
	}
	var record models.ArchiveRecord
	if err := h.parseResponse(resp, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (h *HTTPClient) UpdateFile(ctx context.Context, id string, form models.ArchiveForm) (*models.ArchiveRecord, error) {
	resp, err := h.doRequest(ctx, http.MethodPut, "/api/files/"+url.PathEscape(id), form)
	if err != nil {
		return nil, err
	}
	var record models.ArchiveRecord
	if err := h.parseResponse(resp, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (h *HTTPClient) DeleteFile(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/files/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *HTTPClient) ListHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/history", nil)
	if err != nil {
		return nil, err
	}
	var entries []models.HistoryEntry
	if err := h.parseResponse(resp, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (h *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := h.parseResponse(resp, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (h *HTTPClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := h.parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *HTTPClient) UpdateUser(ctx context.Context, id string, form models.UserForm) (*models.User, error) {
	resp, err := h.doRequest(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), form)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := h.parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// doRequest marshals body (if any), attaches the standard headers plus
// the session token, and issues the request. Transport-level failures
// are wrapped; HTTP status handling happens in parseResponse.
func (h *HTTPClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set(common.AuthTokenHeaderName, h.token)
	}

	reqID := uuid.NewString()
	h.log.Debug(ctx, "request sent", "id", reqID, "method", method, "path", path)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	h.log.Debug(ctx, "response received", "id", reqID, "status", resp.StatusCode)
	return resp, nil
}

// parseResponse decodes a 2xx body into result (when non-nil) and turns
// any other status into *Error carrying the server's message payload.
func (h *HTTPClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}
