package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/etnz/wellets/date"
	"github.com/etnz/wellets/duration"
	"github.com/go-chi/chi/v5"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "s3cr3t"

// newTestClient starts a fake backend routed by route.
func newTestClient(t *testing.T, route func(r chi.Router)) *Client {
	t.Helper()
	r := chi.NewRouter()
	route(r)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", testToken, time.Second, nil)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(r chi.Router) {
		r.Post("/sessions", func(w http.ResponseWriter, r *http.Request) {
			var creds Credentials
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Password != "hunter22" {
				writeJSON(w, http.StatusUnauthorized, `{"status":"error","message":"Invalid credentials"}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"id":"s1","email":"`+creds.Email+`","token":"tok","created_at":"2024-01-01T10:00:00Z","updated_at":"2024-01-01T10:00:00Z"}`)
		})
	})

	s, err := c.Login(context.Background(), "me@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, "me@example.com", s.Email)

	_, err = c.Login(context.Background(), "me@example.com", "wrong")
	assert.True(t, IsUnauthorized(err))
	assert.EqualError(t, err, "api error 401: Invalid credentials")
}

func TestAuthorizationHeader(t *testing.T) {
	c := newTestClient(t, func(r chi.Router) {
		r.Get("/wallets", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				writeJSON(w, http.StatusUnauthorized, `{"message":"Missing token"}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"wallets":[{"id":"w1","alias":"Nubank","balance":12.5,"currency_id":"c1"}],"total":1}`)
		})
	})

	ws, err := c.Wallets(context.Background())
	require.NoError(t, err)
	require.Len(t, ws, 1)
	assert.Equal(t, "Nubank", ws[0].Alias)
	assert.Equal(t, 12.5, ws[0].Balance)

	c.Token = ""
	_, err = c.Wallets(context.Background())
	assert.True(t, IsUnauthorized(err))
}

func TestList(t *testing.T) {
	c := newTestClient(t, func(r chi.Router) {
		r.Get("/currencies", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[{"id":"c1","acronym":"USD","alias":"Dollar","dollar_rate":1},{"id":"c2","acronym":"BRL","alias":"Real","dollar_rate":5.2}]`)
		})
		r.Get("/assets", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `null`)
		})
		r.Get("/investments", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "created", r.URL.Query().Get("status"))
			writeJSON(w, http.StatusOK, `{"page":1}`)
		})
	})

	cs, err := c.Currencies(context.Background())
	require.NoError(t, err)
	require.Len(t, cs, 2)
	assert.Equal(t, 5.2, cs[1].DollarRate)

	as, err := c.Assets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, as)

	_, err = c.Investments(context.Background(), "created")
	assert.ErrorContains(t, err, `no "investments" list`)
}

func TestErrors(t *testing.T) {
	c := newTestClient(t, func(r chi.Router) {
		r.Get("/wallets/{id}", func(w http.ResponseWriter, r *http.Request) {
			switch chi.URLParam(r, "id") {
			case "missing":
				writeJSON(w, http.StatusNotFound, `{"status":"error","message":"Wallet not found"}`)
			case "invalid":
				writeJSON(w, http.StatusBadRequest, `{"errors":[{"field":"id","message":"id must be a UUID"}]}`)
			case "empty":
				writeJSON(w, http.StatusInternalServerError, `{}`)
			default:
				w.WriteHeader(http.StatusBadGateway)
				io.WriteString(w, "upstream is down\n")
			}
		})
	})

	tests := []struct {
		id      string
		status  int
		message string
	}{
		{"missing", 404, "Wallet not found"},
		{"invalid", 400, "id must be a UUID"},
		{"empty", 500, "Internal Server Error"},
		{"down", 502, "upstream is down"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			_, err := c.Wallet(context.Background(), tt.id)
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.status, e.StatusCode)
			assert.Equal(t, tt.message, e.Message)
		})
	}
	_, err := c.Wallet(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestQueries(t *testing.T) {
	var got map[string]string
	record := func(r *http.Request) {
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
	}
	c := newTestClient(t, func(r chi.Router) {
		r.Get("/transactions", func(w http.ResponseWriter, r *http.Request) {
			record(r)
			writeJSON(w, http.StatusOK, `[]`)
		})
		r.Get("/wallets/history", func(w http.ResponseWriter, r *http.Request) {
			record(r)
			writeJSON(w, http.StatusOK, `[{"timestamp":"2024-01-01T00:00:00Z","balance":10},{"timestamp":"2024-01-08T00:00:00Z","balance":12}]`)
		})
		r.Get("/portfolios", func(w http.ResponseWriter, r *http.Request) {
			record(r)
			writeJSON(w, http.StatusOK, `[]`)
		})
	})
	ctx := context.Background()

	_, err := c.Transactions(ctx, TransactionFilter{WalletID: "w1", Limit: 25, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"wallet_id": "w1", "limit": "25", "page": "1"}, got)

	h, err := c.WalletHistory(ctx, HistoryQuery{
		ID:       "w1",
		Range:    date.Range{From: date.New(2024, 1, 1), To: date.New(2024, 1, 31)},
		Interval: date.Weekly,
	})
	require.NoError(t, err)
	assert.Len(t, h, 2)
	assert.Equal(t, map[string]string{"wallet_id": "w1", "start": "2024-01-01", "end": "2024-01-31", "interval": "1w"}, got)

	_, err = c.Portfolios(ctx, PortfolioFilter{ShowAll: true})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"show_all": "true"}, got)
}

func TestCreateAccumulation(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(r chi.Router) {
		r.Post("/accumulations", func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(w, http.StatusCreated, `{"id":"a1","every":{"months":1}}`)
		})
	})

	a, err := c.CreateAccumulation(context.Background(), AccumulationRequest{
		AssetID:        "x",
		Alias:          "BTC DCA",
		Strategy:       "linear",
		Quote:          100,
		PlannedEntries: 12,
		Every:          duration.MustParse("1M"),
		PlannedStart:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PlannedEnd:     time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, duration.Duration{Months: 1}, a.Every)

	every, ok := body["every"].(map[string]any)
	require.True(t, ok, "every is %T", body["every"])
	assert.Len(t, every, 7)
	assert.Equal(t, 1.0, every["months"])
	assert.Equal(t, "2024-01-01T00:00:00Z", body["planned_start"])
}

func TestRebalance(t *testing.T) {
	c := newTestClient(t, func(r chi.Router) {
		r.Get("/portfolios/rebalance", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "p1", r.URL.Query().Get("portfolio_id"))
			writeJSON(w, http.StatusOK, `{
				"currency": {"acronym": "USD", "dollar_rate": 1},
				"changes": [{
					"portfolio": {"id": "p1", "alias": "stocks", "weight": 0.6},
					"wallets": [],
					"target": 600, "actual": 480, "weight": 0.48, "off_by": -0.12,
					"action": {"type": "buy", "amount": 120}
				}]
			}`)
		})
	})

	r, err := c.PortfolioRebalance(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, r.Changes, 1)
	assert.Equal(t, "buy 120.00 USD", r.Changes[0].Action.Format(r.Currency.Acronym))
}

func TestLoggingTransport(t *testing.T) {
	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Get("/currencies", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, http.StatusOK, `[]`) })
	ts := httptest.NewServer(r)
	defer ts.Close()

	c := New(ts.URL, "", time.Second, log.NewLogfmtLogger(&buf))
	_, err := c.Currencies(context.Background())
	require.NoError(t, err)

	line := buf.String()
	assert.Contains(t, line, "level=debug")
	assert.Contains(t, line, "method=GET")
	assert.Contains(t, line, "path=/currencies")
	assert.Contains(t, line, "status=200")
	assert.Contains(t, line, "err=null")
}

func TestTimeout(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/currencies", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	c := New(ts.URL, "", 50*time.Millisecond, nil)
	_, err := c.Currencies(context.Background())
	assert.Error(t, err)
	var e *Error
	assert.False(t, errors.As(err, &e), "a timeout is not an api error")
}
