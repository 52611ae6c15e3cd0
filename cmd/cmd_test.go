package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/wellets"
	"github.com/etnz/wellets/api"
	"github.com/etnz/wellets/auth"
	"github.com/etnz/wellets/config"
	"github.com/etnz/wellets/duration"
	"github.com/go-chi/chi/v5"
	"github.com/go-kit/log"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	usdID      = "6f1d2b1e-0c3a-4a55-9d0e-0d6a1c6b7a01"
	eurID      = "6f1d2b1e-0c3a-4a55-9d0e-0d6a1c6b7a02"
	btcID      = "6f1d2b1e-0c3a-4a55-9d0e-0d6a1c6b7a03"
	walletID   = "0b8f2c4e-3d1a-4c6b-8e2f-5a7d9c1e3b01"
	savingsID  = "0b8f2c4e-3d1a-4c6b-8e2f-5a7d9c1e3b02"
	accumID    = "9a4e6c2d-7b1f-4e3a-a5c8-1d2f3e4a5b01"
	assetID    = "9a4e6c2d-7b1f-4e3a-a5c8-1d2f3e4a5b02"
	createdID  = "c3d4e5f6-a7b8-4c9d-8e0f-1a2b3c4d5e6f"
	testEmail  = "me@example.com"
	testToken  = "tok"
	settingKey = config.KeyPreferredCurrency
)

var (
	usd = wellets.Currency{ID: usdID, Acronym: "USD", DollarRate: 1}
	eur = wellets.Currency{ID: eurID, Acronym: "EUR", DollarRate: 0.9}
	btc = wellets.Currency{ID: btcID, Acronym: "BTC", DollarRate: 0.00002}

	coldStorage = wellets.Wallet{ID: walletID, Alias: "Cold storage", Balance: 0.5, CurrencyID: btcID, Currency: &btc}
	savings     = wellets.Wallet{ID: savingsID, Alias: "Savings", Balance: 1200, CurrencyID: eurID, Currency: &eur}
)

// testEnv is the command line environment of a test: a fake backend, a
// session and captured standard streams.
type testEnv struct {
	stdout, stderr bytes.Buffer
	store          auth.Store
}

// setup replaces the global state of the command line with a test one,
// served by r, and logs in. A nil r serves nothing.
func setup(t *testing.T, r http.Handler) *testEnv {
	t.Helper()
	if r == nil {
		r = chi.NewRouter()
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	env := &testEnv{store: auth.Store{Path: filepath.Join(t.TempDir(), "token.json")}}
	_, err := env.store.Persist(wellets.Session{Email: testEmail, Token: testToken})
	require.NoError(t, err)

	oldCfg, oldStore, oldLogger, oldRaw := cfg, sessionStore, logger, *raw
	oldIn, oldOut, oldErr := stdin, stdout, stderr
	t.Cleanup(func() {
		cfg, sessionStore, logger, *raw = oldCfg, oldStore, oldLogger, oldRaw
		stdin, stdout, stderr = oldIn, oldOut, oldErr
	})

	cfg = &config.Config{
		APIURL:         srv.URL,
		DateFormat:     "2006-01-02",
		DateTimeFormat: "2006-01-02 15:04",
		HTTPTimeout:    5 * time.Second,
	}
	sessionStore = &env.store
	logger = log.NewNopLogger()
	*raw = true
	stdin = strings.NewReader("")
	stdout = &env.stdout
	stderr = &env.stderr
	return env
}

// run runs the wellets command line with args.
func (env *testEnv) run(t *testing.T, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet("wellets", flag.ContinueOnError)
	fs.SetOutput(&env.stderr)
	c := subcommands.NewCommander(fs, "wellets")
	c.Output = &env.stdout
	c.Error = &env.stderr
	Register(c)
	require.NoError(t, fs.Parse(args))
	return c.Execute(context.Background())
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

// backend returns a fake API with the fixtures above. Routes can be added
// or overridden by the caller.
func backend(t *testing.T) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/currencies", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []wellets.Currency{usd, eur, btc})
	})
	r.Get("/users/settings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, wellets.UserSettings{CurrencyID: usdID, Currency: usd})
	})
	r.Get("/wallets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"wallets": []wellets.Wallet{coldStorage, savings}})
	})
	r.Get("/wallets/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "id") {
		case walletID:
			writeJSON(t, w, coldStorage)
		case savingsID:
			writeJSON(t, w, savings)
		default:
			http.Error(w, `{"message":"wallet not found"}`, http.StatusNotFound)
		}
	})
	return r
}

// capture decodes the body of every request to pattern into a channel, and
// answers with a record of id createdID.
func capture[T any](t *testing.T, r chi.Router, method, pattern string) <-chan T {
	bodies := make(chan T, 4)
	r.Method(method, pattern, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var v T
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&v))
		bodies <- v
		writeJSON(t, w, map[string]string{"id": createdID})
	}))
	return bodies
}

func received[T any](t *testing.T, bodies <-chan T) T {
	t.Helper()
	select {
	case v := <-bodies:
		return v
	default:
		t.Fatal("no request received")
	}
	var zero T
	return zero
}

func TestWalletList(t *testing.T) {
	env := setup(t, backend(t))

	status := env.run(t, "wallet", "list")

	require.Equal(t, subcommands.ExitSuccess, status, env.stderr.String())
	assert.Contains(t, env.stdout.String(), "Cold storage")
	assert.Contains(t, env.stdout.String(), "Savings")
}

func TestTransactionCreate(t *testing.T) {
	r := backend(t)
	bodies := capture[api.TransactionRequest](t, r, http.MethodPost, "/transactions")
	env := setup(t, r)

	// Selling 0.1 BTC at 50,000 USD each.
	status := env.run(t, "transaction", "create", "-wallet", walletID, "-value", "0.1", "-outcome",
		"-change-currency", "USD", "-change", "50000", "-y")

	require.Equal(t, subcommands.ExitSuccess, status, env.stderr.String())
	got := received(t, bodies)
	assert.Equal(t, walletID, got.WalletID)
	assert.Equal(t, -0.1, got.Value)
	assert.InDelta(t, 0.00002, got.DollarRate, 1e-12)
	assert.Equal(t, "Buy", got.Description)
	assert.Nil(t, got.AccumulationID)
	assert.Equal(t, createdID+"\n", env.stdout.String())
}

func TestTransactionCreateDefaultRate(t *testing.T) {
	r := backend(t)
	bodies := capture[api.TransactionRequest](t, r, http.MethodPost, "/transactions")
	env := setup(t, r)

	status := env.run(t, "transaction", "create", "-wallet", savingsID, "-value", "100", "-description", "Salary", "-y")

	require.Equal(t, subcommands.ExitSuccess, status, env.stderr.String())
	got := received(t, bodies)
	assert.Equal(t, 100.0, got.Value)
	assert.Equal(t, eur.DollarRate, got.DollarRate)
	assert.Equal(t, "Salary", got.Description)
}

func TestWalletSetBalance(t *testing.T) {
	r := backend(t)
	bodies := capture[api.TransactionRequest](t, r, http.MethodPost, "/transactions")
	env := setup(t, r)

	status := env.run(t, "wallet", "set-balance", "-id", walletID, "-balance", "1.5", "-y")

	require.Equal(t, subcommands.ExitSuccess, status, env.stderr.String())
	got := received(t, bodies)
	assert.Equal(t, 1.0, got.Value)
	assert.Equal(t, btc.DollarRate, got.DollarRate)
	assert.Equal(t, "Balance change", got.Description)
}

func TestTransferCreate(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantValue float64
		wantFee   float64
	}{
		{
			name:      "value with fee",
			args:      []string{"-value", "10", "-percentual-fee", "1.5"},
			wantValue: 10,
			wantFee:   0.015,
		},
		{
			name:      "max",
			args:      []string{"-m"},
			wantValue: coldStorage.Balance,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := backend(t)
			bodies := capture[api.TransferRequest](t, r, http.MethodPost, "/transfers")
			env := setup(t, r)

			args := append([]string{"transfer", "create", "-from", walletID, "-to", savingsID, "-y"}, tc.args...)
			status := env.run(t, args...)

			require.Equal(t, subcommands.ExitSuccess, status, env.stderr.String())
			got := received(t, bodies)
			assert.Equal(t, walletID, got.FromWalletID)
			assert.Equal(t, savingsID, got.ToWalletID)
			assert.Equal(t, tc.wantValue, got.Value)
			assert.InDelta(t, tc.wantFee, got.PercentualFee, 1e-12)
		})
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing id", []string{"wallet", "delete"}, "-id is required"},
		{"invalid id", []string{"wallet", "delete", "-id", "nope"}, wellets.MsgUUID},
		{"same wallets", []string{"transfer", "create", "-from", walletID, "-to", walletID, "-value", "1"}, "must be different"},
		{"no value", []string{"transfer", "create", "-from", walletID, "-to", savingsID}, "exactly one of -value or -m"},
		{"missing value", []string{"transaction", "create", "-wallet", walletID}, "-value is required"},
		{"negative value", []string{"transaction", "create", "-wallet", walletID, "-value", "-1"}, "-value"},
		{"exclusive rates", []string{"transaction", "create", "-wallet", walletID, "-value", "1", "-dollar-rate", "2", "-change-currency", "EUR", "-change", "3"}, "exclusive"},
		{"bare group", []string{"wallet"}, "Subcommands:"},
		{"no key", []string{"config", "set"}, "expected exactly one key"},
		{"unknown key", []string{"config", "set", "-currency", "EUR", "nope"}, config.ErrUnknownKey.Error()},
		{"not settable", []string{"config", "set", "-currency", "EUR", config.KeyAPIURL}, settingKey},
		{"unknown status", []string{"investment", "list", "-status", "open"}, "unknown status"},
		{"weight out of range", []string{"portfolio", "create", "-alias", "Stocks", "-weight", "120"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := setup(t, nil)

			status := env.run(t, tc.args...)

			assert.Equal(t, subcommands.ExitUsageError, status)
			assert.Contains(t, env.stderr.String(), tc.want)
		})
	}
}

func TestNotLoggedIn(t *testing.T) {
	env := setup(t, backend(t))
	require.NoError(t, env.store.Clear())

	status := env.run(t, "wallet", "list")

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, env.stderr.String(), auth.ErrNotLoggedIn.Error())
	assert.Contains(t, env.stderr.String(), `Run "wellets login" first.`)
}

func TestExpiredToken(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/wallets", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid token"}`, http.StatusUnauthorized)
	})
	r.Get("/currencies", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid token"}`, http.StatusUnauthorized)
	})
	r.Get("/users/settings", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid token"}`, http.StatusUnauthorized)
	})
	env := setup(t, r)

	status := env.run(t, "wallet", "list")

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, env.stderr.String(), `Run "wellets login" first.`)
}

func TestSession(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/sessions", func(w http.ResponseWriter, r *http.Request) {
		var c api.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		if c.Password != "secret" {
			http.Error(w, `{"message":"wrong credentials"}`, http.StatusUnauthorized)
			return
		}
		writeJSON(t, w, wellets.Session{Email: c.Email, Token: "fresh"})
	})
	env := setup(t, r)
	require.NoError(t, env.store.Clear())

	require.Equal(t, subcommands.ExitSuccess, env.run(t, "whoami"))
	assert.Equal(t, "Not logged in\n", env.stdout.String())

	env.stdout.Reset()
	require.Equal(t, subcommands.ExitFailure, env.run(t, "login", "-email", "other@example.com", "-password", "wrong"))
	assert.Empty(t, env.store.Token())

	require.Equal(t, subcommands.ExitSuccess, env.run(t, "login", "-email", "other@example.com", "-password", "secret"), env.stderr.String())
	assert.Contains(t, env.stdout.String(), "Logged in as other@example.com.")
	assert.Equal(t, "fresh", env.store.Token())

	env.stdout.Reset()
	require.Equal(t, subcommands.ExitSuccess, env.run(t, "whoami"))
	assert.Equal(t, "other@example.com\n", env.stdout.String())

	env.stdout.Reset()
	require.Equal(t, subcommands.ExitSuccess, env.run(t, "logout"))
	assert.Equal(t, "Logged out.\n", env.stdout.String())
	assert.Empty(t, env.store.Token())
}

func TestConfigSetPreferredCurrency(t *testing.T) {
	r := backend(t)
	var got struct {
		CurrencyID string `json:"currency_id"`
	}
	var calls atomic.Int32
	r.Put("/users/settings", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, wellets.UserSettings{CurrencyID: eurID, Currency: eur})
	})
	env := setup(t, r)

	status := env.run(t, "config", "set", "-currency", "eur", settingKey)

	require.Equal(t, subcommands.ExitSuccess, status, env.stderr.String())
	require.Equal(t, int32(1), calls.Load())
	assert.Equal(t, eurID, got.CurrencyID)
	assert.Equal(t, "✅ "+settingKey+" set to eur.\n", env.stdout.String())
}

func TestConfigShow(t *testing.T) {
	env := setup(t, backend(t))

	status := env.run(t, "config", "show", settingKey)

	require.Equal(t, subcommands.ExitSuccess, status, env.stderr.String())
	assert.Contains(t, env.stdout.String(), settingKey)
	assert.Contains(t, env.stdout.String(), "USD")
}

func TestDeclinedConfirmation(t *testing.T) {
	r := backend(t)
	var deleted atomic.Bool
	r.Delete("/wallets/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted.Store(true)
		writeJSON(t, w, coldStorage)
	})
	env := setup(t, r)
	stdin = strings.NewReader("n\n")

	status := env.run(t, "wallet", "delete", "-id", walletID)

	assert.Equal(t, subcommands.ExitFailure, status)
	assert.False(t, deleted.Load())
	assert.Contains(t, env.stderr.String(), "irreversible")
	assert.Contains(t, env.stderr.String(), "Aborted.")
}

func TestAccumulationCreateEntry(t *testing.T) {
	r := backend(t)
	r.Get("/accumulations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"accumulations": []wellets.Accumulation{
			{ID: accumID, Alias: "DCA", AssetID: assetID, PlannedEntries: 12},
		}})
	})
	r.Get("/accumulations/{id}/next-entry", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, accumID, chi.URLParam(r, "id"))
		writeJSON(t, w, wellets.NextAccumulationEntry{Entry: 3, Amount: 100})
	})
	bodies := capture[api.TransactionRequest](t, r, http.MethodPost, "/transactions")
	env := setup(t, r)

	status := env.run(t, "accumulation", "create-entry", "-id", accumID, "-wallet", walletID, "-value", "0.01", "-y")

	require.Equal(t, subcommands.ExitSuccess, status, env.stderr.String())
	got := received(t, bodies)
	assert.Equal(t, "DCA entry #3", got.Description)
	require.NotNil(t, got.AccumulationID)
	assert.Equal(t, accumID, *got.AccumulationID)
	assert.Equal(t, 0.01, got.Value)
}

func TestAccumulationRequest(t *testing.T) {
	c := &accumulationCreateCmd{
		asset:    assetID,
		alias:    "DCA",
		strategy: "linear",
		quote:    1000,
		entries:  3,
		every:    duration.MustParse("1w"),
		start:    "2024-01-01 10:00",
	}

	r, err := c.request()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local), r.PlannedStart)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local), r.PlannedEnd)
	assert.Equal(t, 3, r.PlannedEntries)

	c.end = "2023-12-31 10:00"
	_, err = c.request()
	assert.ErrorContains(t, err, "-end is before -start")

	c.end, c.every = "", duration.Duration{}
	_, err = c.request()
	assert.ErrorContains(t, err, "-every is required")
}

func TestKnown(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("wellets", flag.ContinueOnError), "wellets")
	Register(c)

	assert.True(t, Known(c, "wallet"))
	assert.True(t, Known(c, "login"))
	assert.False(t, Known(c, "hello"))
}

func TestCompletion(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("wellets", flag.ContinueOnError), "wellets")
	Register(c)

	root := Completion(c)

	require.Contains(t, root.Sub, "wallet")
	history := root.Sub["wallet"].Sub["history"]
	require.NotNil(t, history)
	assert.Equal(t, []string{"1d", "1w"}, history.Flags["interval"].Predict(""))
	assert.Contains(t, history.Flags, "id")
	assert.Empty(t, root.Sub["wallet"].Sub["delete"].Flags["y"].Predict(""))

	require.Contains(t, root.Sub, "topic")
	assert.Contains(t, root.Sub["topic"].Args.Predict(""), "duration")
}
