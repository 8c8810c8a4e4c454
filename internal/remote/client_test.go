package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const depositJSON = `{
	"id": "7b0c2d1e-0000-4000-8000-000000000001",
	"fd_number": "FD-2024-0001",
	"customer_name": "Asha Rao",
	"id_type": "PAN",
	"id_number": "ABCDE1234F",
	"deposit_amount": 100000.0,
	"interest_rate": 7.0,
	"tenure_months": 12,
	"start_date": "2024-03-15",
	"maturity_date": "2025-03-15",
	"maturity_amount": 107000.0,
	"status": "ACTIVE",
	"created_by": "officer-1",
	"created_at": "2024-03-15T10:00:00+00:00"
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL+"/", "secret-token")
	c.NewRequestID = func() string { return "req-1" }
	return c
}

func TestClient_GetSettings(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/settings", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"id":"1","interest_type":"COMPOUND","penalty_percent":1.0,"default_interest_rates":{"24":7.25,"12":7.0},"updated_at":"2024-01-01"}`))
	})

	settings, err := c.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Compound, settings.InterestType)
	assert.Equal(t, dateutil.ACT365Fixed, settings.DayCount)
	require.Len(t, settings.DefaultInterestRates, 2)
	assert.Equal(t, 24, settings.DefaultInterestRates[0].TenureMonths)
}

func TestClient_UpdateSettings(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"interest_type":"SIMPLE","penalty_percent":1.5,"default_interest_rates":{"6":6.5,"12":7}}`, string(body))
		w.Write([]byte(`{"id":"1","interest_type":"SIMPLE","penalty_percent":1.5,"default_interest_rates":{"6":6.5,"12":7}}`))
	})

	updated, err := c.UpdateSettings(context.Background(), &domain.Settings{
		InterestType:   domain.Simple,
		PenaltyPercent: decimal.RequireFromString("1.5"),
		DefaultInterestRates: domain.RateTable{
			{TenureMonths: 6, RatePercent: decimal.RequireFromString("6.5")},
			{TenureMonths: 12, RatePercent: decimal.NewFromInt(7)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "1.5", updated.PenaltyPercent.String())
	assert.Equal(t, []int{6, 12}, updated.DefaultInterestRates.Tenures())
}

func TestClient_CreateDeposit(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create-fd", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		var got map[string]interface{}
		assert.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, float64(100000), got["deposit_amount"])
		assert.Equal(t, "2024-03-15", got["start_date"])

		w.Write([]byte(depositJSON))
	})

	rate := decimal.NewFromInt(7)
	input := domain.DepositInput{
		CustomerName:  "Asha Rao",
		DepositAmount: decimal.NewFromInt(100000),
		TenureMonths:  12,
		StartDate:     dateutil.New(2024, 3, 15),
	}
	d, err := c.CreateDeposit(context.Background(), input.Request(rate))
	require.NoError(t, err)
	assert.Equal(t, "FD-2024-0001", d.FDNumber)
	assert.Equal(t, dateutil.New(2025, 3, 15), d.MaturityDate)
	assert.True(t, d.MaturityAmount.Equal(decimal.NewFromInt(107000)))
	assert.Equal(t, domain.StatusActive, d.Status)
}

func TestClient_ListDeposits(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fds", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "ACTIVE", q.Get("status"))
		assert.Equal(t, "Asha", q.Get("customer_name"))
		assert.Equal(t, "2024-01-01", q.Get("start_from"))
		assert.Empty(t, q.Get("start_to"))
		w.Write([]byte(`{"items":[` + depositJSON + `]}`))
	})

	items, err := c.ListDeposits(context.Background(), ListFilter{
		Status:       domain.StatusActive,
		CustomerName: "Asha",
		StartFrom:    dateutil.New(2024, 1, 1),
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Asha Rao", items[0].CustomerName)
}

func TestClient_SimulateAndConfirmClosure(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req domain.ClosureRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, dateutil.New(2024, 9, 15), req.ClosureDate)

		switch r.URL.Path {
		case "/simulate-closure/fd-1":
			w.Write([]byte(`{"accrued_interest":3528.767123,"penalty":35.287671,"penalty_percent_used":1.0,"net_interest":3493.479452,"payable_amount":103493.479452,"elapsed_years":0.504110}`))
		case "/confirm-closure/fd-1":
			w.Write([]byte(`{"id":"fd-1","fd_number":"FD-2024-0001","status":"CLOSED","start_date":"2024-03-15","maturity_date":"2025-03-15"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	sim, err := c.SimulateClosure(context.Background(), "fd-1", dateutil.New(2024, 9, 15))
	require.NoError(t, err)
	assert.Equal(t, "103493.48", sim.PayableAmount.StringFixed(2))

	d, err := c.ConfirmClosure(context.Background(), "fd-1", dateutil.New(2024, 9, 15))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClosed, d.Status)
}

func TestClient_Login(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			w.Write([]byte(`{"access_token":"fresh","role":"OFFICER","user_id":"u1","email":"o@bank.test"}`))
		case "/dashboard":
			assert.Equal(t, "Bearer fresh", r.Header.Get("Authorization"))
			w.Write([]byte(`{"total_active_fds":3,"total_maturity_value_active":321000.5,"total_closed_fds":1}`))
		}
	})
	c.Token = ""

	resp, err := c.Login(context.Background(), "o@bank.test", "pw")
	require.NoError(t, err)
	assert.Equal(t, "OFFICER", resp.Role)
	assert.Equal(t, "fresh", c.Token)

	dash, err := c.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, dash.TotalActiveFDs)
	assert.Equal(t, "321000.50", dash.TotalMaturityValueActive.StringFixed(2))
}

func TestClient_APIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"string detail", http.StatusNotFound, `{"detail":"FD not found"}`, "FD not found"},
		{"validation detail", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","closure_date"],"msg":"field required"}]}`, "field required"},
		{"plain body", http.StatusBadGateway, `upstream down`, "upstream down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.SimulateClosure(context.Background(), "fd-1", dateutil.New(2024, 9, 15))
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.detail, apiErr.Detail)
			assert.Equal(t, "req-1", apiErr.RequestID)
			assert.Equal(t, tt.status == http.StatusNotFound, IsNotFound(err))
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "")
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.NotEmpty(t, c.NewRequestID())
	assert.NotEqual(t, c.NewRequestID(), c.NewRequestID())
}
