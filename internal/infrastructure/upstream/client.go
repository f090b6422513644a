// Package upstream implements the typed HTTP client for the forum REST API.
//
// The client owns exactly two pieces of shared-state behaviour: it attaches
// the session's bearer token to every outgoing request, and on an
// unauthenticated response it purges that token and flags the error for a
// login redirect. Validation failures (422) are broadcast to the notifier
// once and re-raised. Everything else passes through as a typed error for the
// caller to handle. The client never holds entity data.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/studyoverflow/gateway/internal/api/metrics"
	"github.com/studyoverflow/gateway/internal/core/domain"
	"github.com/studyoverflow/gateway/internal/core/ports"
	"github.com/studyoverflow/gateway/internal/core/reqctx"
)

// unauthenticatedMarker is the substring the upstream puts in 401 bodies when
// the bearer token is missing or invalid (as opposed to merely
// under-privileged).
const unauthenticatedMarker = "unauthenticated"

// loginRedirectExempt lists paths where an unauthenticated response must not
// trigger a redirect: public pages incidentally calling authenticated
// endpoints would otherwise loop.
var loginRedirectExempt = map[string]struct{}{
	"/":         {},
	"/login":    {},
	"/register": {},
}

// Client is the single configured request/response pipeline for the upstream
// forum API. All resource clients share one instance.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   ports.TokenStore
	notifier ports.Notifier
	log      zerolog.Logger
}

// New builds a Client. notifier receives one error toast per 422 response;
// nil means the toasts are dropped.
func New(baseURL string, httpClient *http.Client, tokens ports.TokenStore, notifier ports.Notifier, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if notifier == nil {
		notifier = ports.NotifierFunc(func(context.Context, string, string) {})
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		tokens:   tokens,
		notifier: notifier,
		log:      log,
	}
}

// Ping reports whether the upstream answers HTTP at all. Any response,
// error statuses included, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Get issues a GET and decodes the 2xx body into out (when out is non-nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	payload, contentType, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, payload, contentType, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	payload, contentType, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, payload, contentType, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", out)
}

// PostMultipart issues a POST with multipart form encoding, used by the
// attachment-carrying endpoints. fields may contain repeated keys (e.g.
// "tags[]").
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string][]string, files []ports.Attachment, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			if err := w.WriteField(key, v); err != nil {
				return fmt.Errorf("multipart field %s: %w", key, err)
			}
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile("attachments[]", f.Name)
		if err != nil {
			return fmt.Errorf("multipart file %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("multipart file %s: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, &buf, w.FormDataContentType(), out)
}

func encodeJSON(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(raw), "application/json", nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Request decoration: bearer token from the session's store entry, when
	// one exists. No token, no header.
	if sid := reqctx.SessionID(ctx); sid != "" {
		token, err := c.tokens.Get(ctx, sid)
		if err != nil {
			c.log.Error().Err(err).Msg("token lookup failed; sending unauthenticated")
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		return &domain.APIError{Kind: domain.KindTransient, Message: err.Error()}
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.APIError{Kind: domain.KindTransient, Message: err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &domain.APIError{Kind: domain.KindTransient, Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
		}
		return nil
	}

	return c.intercept(ctx, resp.StatusCode, raw)
}

// errorBody is the upstream's error envelope. Laravel-style responses carry
// "message" (plus per-field "errors" on 422); some endpoints use "error".
type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

// intercept translates a non-2xx response into a typed error, applying the
// two centrally handled conditions in precedence order: 422 broadcast, then
// unauthenticated purge + conditional redirect.
func (c *Client) intercept(ctx context.Context, status int, raw []byte) error {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)

	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	apiErr := &domain.APIError{
		Status:  status,
		Kind:    domain.KindForStatus(status),
		Message: msg,
		Fields:  eb.Errors,
	}

	switch {
	case status == http.StatusUnprocessableEntity:
		// Exactly one toast per failed call; the error is still re-raised so
		// the caller can surface inline context.
		c.notifier.Notify(ctx, ports.ToastError, msg)

	case status == http.StatusUnauthorized && strings.Contains(strings.ToLower(msg), unauthenticatedMarker):
		apiErr.Kind = domain.KindUnauthenticated
		if sid := reqctx.SessionID(ctx); sid != "" {
			if err := c.tokens.Clear(ctx, sid); err != nil {
				c.log.Error().Err(err).Msg("token purge failed")
			}
		}
		if _, exempt := loginRedirectExempt[reqctx.Path(ctx)]; !exempt {
			apiErr.RedirectToLogin = true
			metrics.LoginRedirectsTotal.WithLabelValues("unauthenticated").Inc()
		}
	}

	return apiErr
}
