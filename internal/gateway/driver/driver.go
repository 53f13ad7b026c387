package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"service-lastmile/internal/apperr"
	"service-lastmile/internal/domain"
)

const (
	assignPath   = "/v1/last-mile-driver/internal/drivers/assign"
	completePath = "/v1/last-mile-driver/internal/drivers/%s/complete"
	cancelPath   = "/v1/last-mile-driver/internal/drivers/%s/cancel"

	errorBodyLimit = 4 << 10
)

// HTTPGateway is a driver gateway backed by the driver service REST API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewHTTPGateway creates a driver gateway for the service at baseURL.
func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Assign asks the driver service to pick an agent for the delivery.
func (g *HTTPGateway) Assign(ctx context.Context, hubID, deliveryID string) (domain.AgentAssignment, error) {
	var resp assignResponse
	err := g.do(ctx, "assign", http.MethodPost, assignPath, assignRequest{HubID: hubID, DeliveryID: deliveryID}, &resp)
	if err != nil {
		return domain.AgentAssignment{}, err
	}
	if strings.TrimSpace(resp.DriverID) == "" {
		return domain.AgentAssignment{}, &apperr.GatewayError{
			Kind: apperr.GatewayRejected,
			Op:   "assign",
			Err:  errors.New("no available driver"),
		}
	}

	assignedAt := g.now()
	if resp.AssignedAt != nil && !resp.AssignedAt.IsZero() {
		assignedAt = resp.AssignedAt.UTC()
	}
	return domain.AgentAssignment{
		AgentID:    resp.DriverID,
		AgentName:  resp.DriverName,
		AssignedAt: assignedAt,
	}, nil
}

// NotifyComplete reports a finished delivery. durationMinutes may be nil.
func (g *HTTPGateway) NotifyComplete(ctx context.Context, agentID string, durationMinutes *int64) error {
	path := fmt.Sprintf(completePath, url.PathEscape(agentID))
	return g.do(ctx, "notify_complete", http.MethodPut, path, completeRequest{DeliveryTimeMin: durationMinutes}, nil)
}

// NotifyCancel releases the agent of a canceled delivery.
func (g *HTTPGateway) NotifyCancel(ctx context.Context, agentID string) error {
	path := fmt.Sprintf(cancelPath, url.PathEscape(agentID))
	return g.do(ctx, "notify_cancel", http.MethodPut, path, nil, nil)
}

func (g *HTTPGateway) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &apperr.GatewayError{Kind: apperr.GatewayUnknown, Op: op, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return &apperr.GatewayError{Kind: apperr.GatewayUnknown, Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return &apperr.GatewayError{Kind: apperr.GatewayUnavailable, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &apperr.GatewayError{
			Kind:       kindOf(resp.StatusCode),
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        remoteError(msg),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperr.GatewayError{
			Kind:       apperr.GatewayUnknown,
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func kindOf(status int) apperr.GatewayKind {
	switch status {
	case http.StatusNotFound:
		return apperr.GatewayNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return apperr.GatewayRejected
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return apperr.GatewayUnavailable
	default:
		return apperr.GatewayUnknown
	}
}

func remoteError(body []byte) error {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return errors.New(e.Message)
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return errors.New(msg)
	}
	return nil
}
