package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
	"github.com/dmitrijs2005/forsa-manager/internal/common"
	"github.com/dmitrijs2005/forsa-manager/internal/logging"
	"github.com/google/uuid"
)

type HTTPClient struct {
	baseURL        string
	http           *http.Client
	timeout        time.Duration
	tokens         TokenSource
	onUnauthorized func(ctx context.Context)
	log            logging.Logger
	newRequestID   func() string
}

type Option func(*HTTPClient)

func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithTimeout bounds every request. It applies to a copy of the
// underlying client, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithUnauthorizedHook registers fn to run whenever a privileged request is
// answered with 401, before ErrUnauthorized is returned.
func WithUnauthorizedHook(fn func(ctx context.Context)) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: 30 * time.Second},
		log:          logging.Discard(),
		newRequestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		h := *c.http
		h.Timeout = c.timeout
		c.http = &h
	}
	return c
}

// call describes one request. auth marks privileged endpoints.
type call struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

// do sends c and returns the body of a 2xx response.
func (h *HTTPClient) do(ctx context.Context, c call) ([]byte, error) {
	var payload io.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", c.method, c.path, err)
		}
		payload = bytes.NewReader(b)
	}

	target := h.baseURL + c.path
	if len(c.query) > 0 {
		target += "?" + c.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, c.method, target, payload)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", c.method, c.path, err)
	}

	reqID := h.newRequestID()
	req.Header.Set(common.RequestIDHeader, reqID)
	req.Header.Set("Accept", common.ContentTypeJSON)
	if payload != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}

	if c.auth && h.tokens != nil {
		token, err := h.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	log := h.log.With("method", c.method, "path", c.path, "request_id", reqID)
	start := time.Now()

	resp, err := h.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized && c.auth:
		log.Warn(ctx, "session rejected by server")
		if h.onUnauthorized != nil {
			h.onUnauthorized(ctx)
		}
		return nil, ErrUnauthorized
	default:
		apiErr := &APIError{Status: resp.StatusCode, Message: serverMessage(body)}
		log.Warn(ctx, "request rejected", "status", resp.StatusCode, "message", apiErr.Message)
		return nil, apiErr
	}
}

// serverMessage extracts {"message": "..."} (or "error") from an error body.
func serverMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &m) != nil {
		return ""
	}
	if m.Message != "" {
		return m.Message
	}
	return m.Error
}

func (h *HTTPClient) Login(ctx context.Context, phoneNumber, password string) (*models.LoginResponse, error) {
	body, err := h.do(ctx, call{
		method: http.MethodPost,
		path:   "/user/login",
		body:   models.Credentials{PhoneNumber: phoneNumber, Password: password},
	})
	if err != nil {
		return nil, err
	}

	var lr models.LoginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("%w: login: %v", ErrMalformedResponse, err)
	}
	if lr.Token == "" {
		return nil, fmt.Errorf("%w: login: no token", ErrMalformedResponse)
	}
	return &lr, nil
}

func (h *HTTPClient) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	body, err := h.do(ctx, call{method: http.MethodGet, path: "/manager/dashboard-data", auth: true})
	if err != nil {
		return nil, err
	}

	var d models.Dashboard
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("%w: dashboard: %v", ErrMalformedResponse, err)
	}
	return &d, nil
}

func (h *HTTPClient) ListUsers(ctx context.Context, page, limit int) ([]models.User, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	body, err := h.do(ctx, call{method: http.MethodGet, path: "/manager/users-list", query: q, auth: true})
	if err != nil {
		return nil, err
	}
	return decodeList[models.User](ctx, h.log, body, "users", "data"), nil
}

func (h *HTTPClient) UpdateUser(ctx context.Context, userID string, isSpecial bool) error {
	_, err := h.do(ctx, call{
		method: http.MethodPost,
		path:   "/manager/update-user",
		body: struct {
			UserID    string `json:"userId"`
			IsSpecial bool   `json:"isSpecial"`
		}{userID, isSpecial},
		auth: true,
	})
	return err
}

func (h *HTTPClient) DeleteUser(ctx context.Context, userID string) error {
	_, err := h.do(ctx, call{
		method: http.MethodDelete,
		path:   "/user/delete-account",
		body: struct {
			UserID string `json:"userId"`
		}{userID},
		auth: true,
	})
	return err
}

func (h *HTTPClient) ListPendingAds(ctx context.Context) ([]models.Ad, error) {
	body, err := h.do(ctx, call{method: http.MethodGet, path: "/manager/notApproved-ads", auth: true})
	if err != nil {
		return nil, err
	}
	return decodeList[models.Ad](ctx, h.log, body, "ads", "data"), nil
}

func (h *HTTPClient) ApproveAd(ctx context.Context, adID string) error {
	_, err := h.do(ctx, call{method: http.MethodPut, path: "/manager/approve-ad/" + url.PathEscape(adID), auth: true})
	return err
}

func (h *HTTPClient) RejectAd(ctx context.Context, adID string) error {
	_, err := h.do(ctx, call{method: http.MethodDelete, path: "/manager/reject-ad/" + url.PathEscape(adID), auth: true})
	return err
}

func (h *HTTPClient) ListImages(ctx context.Context) ([]models.ImageRecord, error) {
	body, err := h.do(ctx, call{method: http.MethodGet, path: "/manager/images-mgm", auth: true})
	if err != nil {
		return nil, err
	}
	return decodeList[models.ImageRecord](ctx, h.log, body, "images", "data"), nil
}

// UploadImage posts base64 content. A 2xx whose body cannot be decoded
// yields an empty record rather than an error: the upload happened.
func (h *HTTPClient) UploadImage(ctx context.Context, content string) (*models.ImageRecord, error) {
	body, err := h.do(ctx, call{
		method: http.MethodPost,
		path:   "/manager/images-mgm",
		body:   models.ImageRecord{Content: content},
		auth:   true,
	})
	if err != nil {
		return nil, err
	}

	var rec models.ImageRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		h.log.Warn(ctx, "upload acknowledged without a readable body", "error", err)
		return &models.ImageRecord{}, nil
	}
	return &rec, nil
}

func (h *HTTPClient) DeleteImage(ctx context.Context, imageID string) error {
	_, err := h.do(ctx, call{method: http.MethodDelete, path: "/manager/images-mgm/" + url.PathEscape(imageID), auth: true})
	return err
}
