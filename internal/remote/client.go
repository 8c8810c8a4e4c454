package remote

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

	"github.com/google/uuid"
	"github.com/rgehrsitz/fdgo/internal/config"
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
)

// DefaultBaseURL is where the FD service listens in development
const DefaultBaseURL = "http://localhost:8000"

// APIError is a non-2xx response from the FD service. Detail carries the
// service's {"detail": ...} message when it sent one.
type APIError struct {
	StatusCode int
	Detail     string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("fd service: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("fd service: HTTP %d: %s", e.StatusCode, e.Detail)
}

// IsNotFound reports whether err is a 404 from the service
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the FD service over HTTP
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	// NewRequestID mints the X-Request-ID sent with each call
	NewRequestID func() string
}

// NewClient creates a client for baseURL; an empty baseURL uses DefaultBaseURL
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Token:        token,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
		NewRequestID: uuid.NewString,
	}
}

// LoginResponse is returned by POST /login
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
}

// Login exchanges credentials for a bearer token and keeps it on the client
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &out); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.Token = out.AccessToken
	return &out, nil
}

// GetSettings fetches the bank-wide settings, with local defaults applied
func (c *Client) GetSettings(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	if err := c.do(ctx, http.MethodGet, "/settings", nil, nil, &settings); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	config.ApplySettingsDefaults(&settings)
	return &settings, nil
}

// UpdateSettings replaces the bank-wide settings. The service only lets
// supervisors do this.
func (c *Client) UpdateSettings(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	body := struct {
		InterestType         domain.InterestConvention `json:"interest_type"`
		PenaltyPercent       json.Number               `json:"penalty_percent"`
		DefaultInterestRates domain.RateTable          `json:"default_interest_rates"`
	}{
		InterestType:         settings.InterestType,
		PenaltyPercent:       json.Number(settings.PenaltyPercent.String()),
		DefaultInterestRates: settings.DefaultInterestRates,
	}

	var out domain.Settings
	if err := c.do(ctx, http.MethodPut, "/settings", nil, body, &out); err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	config.ApplySettingsDefaults(&out)
	return &out, nil
}

// CreateDeposit opens a deposit. The service computes the authoritative
// maturity and assigns the FD number.
func (c *Client) CreateDeposit(ctx context.Context, req domain.DepositRequest) (*domain.Deposit, error) {
	var out domain.Deposit
	if err := c.do(ctx, http.MethodPost, "/create-fd", nil, req, &out); err != nil {
		return nil, fmt.Errorf("create deposit: %w", err)
	}
	return &out, nil
}

// ListFilter narrows ListDeposits. Zero fields are not sent.
type ListFilter struct {
	Status       domain.DepositStatus
	CustomerName string
	StartFrom    dateutil.Date
	StartTo      dateutil.Date
}

func (f ListFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.CustomerName != "" {
		q.Set("customer_name", f.CustomerName)
	}
	if !f.StartFrom.IsZero() {
		q.Set("start_from", f.StartFrom.String())
	}
	if !f.StartTo.IsZero() {
		q.Set("start_to", f.StartTo.String())
	}
	return q
}

// ListDeposits returns the deposit register, newest first
func (c *Client) ListDeposits(ctx context.Context, filter ListFilter) ([]domain.Deposit, error) {
	var out struct {
		Items []domain.Deposit `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/fds", filter.query(), nil, &out); err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	return out.Items, nil
}

// SimulateClosure asks the service to value closing deposit id on closureDate
func (c *Client) SimulateClosure(ctx context.Context, id string, closureDate dateutil.Date) (*domain.ClosureSimulation, error) {
	var out domain.ClosureSimulation
	path := "/simulate-closure/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPost, path, nil, domain.ClosureRequest{ClosureDate: closureDate}, &out); err != nil {
		return nil, fmt.Errorf("simulate closure of %s: %w", id, err)
	}
	return &out, nil
}

// ConfirmClosure closes deposit id as of closureDate
func (c *Client) ConfirmClosure(ctx context.Context, id string, closureDate dateutil.Date) (*domain.Deposit, error) {
	var out domain.Deposit
	path := "/confirm-closure/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPost, path, nil, domain.ClosureRequest{ClosureDate: closureDate}, &out); err != nil {
		return nil, fmt.Errorf("confirm closure of %s: %w", id, err)
	}
	return &out, nil
}

// Dashboard fetches the service's aggregate counts
func (c *Client) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	var out domain.DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &out, nil
}

// Health pings the service
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	requestID := ""
	if c.NewRequestID != nil {
		requestID = c.NewRequestID()
		req.Header.Set("X-Request-ID", requestID)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(data), RequestID: requestID}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseDetail pulls the message out of a FastAPI error body. Validation
// errors carry a list of {msg} objects instead of a string.
func parseDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return strings.TrimSpace(string(data))
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(body.Detail)
}
