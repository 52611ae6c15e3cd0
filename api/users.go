package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/etnz/wellets"
)

// Login opens a session. The returned session holds the token to use in the following calls.
func (c *Client) Login(ctx context.Context, email, password string) (wellets.Session, error) {
	var s wellets.Session
	err := c.do(ctx, http.MethodPost, "/sessions", nil, Credentials{email, password}, &s)
	return s, err
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password string) (wellets.User, error) {
	var u wellets.User
	err := c.do(ctx, http.MethodPost, "/users", nil, Credentials{email, password}, &u)
	return u, err
}

// UserSettings returns the settings of the logged in user.
func (c *Client) UserSettings(ctx context.Context) (wellets.UserSettings, error) {
	var s wellets.UserSettings
	err := c.get(ctx, "/users/settings", nil, &s)
	return s, err
}

// PreferredCurrency is the currency all countervalues are computed in.
func (c *Client) PreferredCurrency(ctx context.Context) (wellets.Currency, error) {
	s, err := c.UserSettings(ctx)
	return s.Currency, err
}

// SetPreferredCurrency changes the preferred currency of the logged in user.
func (c *Client) SetPreferredCurrency(ctx context.Context, currencyID string) (wellets.UserSettings, error) {
	var s wellets.UserSettings
	err := c.do(ctx, http.MethodPut, "/users/settings", nil, settingsRequest{currencyID}, &s)
	return s, err
}

// Currencies lists all the currencies known by the backend.
func (c *Client) Currencies(ctx context.Context) ([]wellets.Currency, error) {
	var cs []wellets.Currency
	err := c.list(ctx, "/currencies", nil, "currencies", &cs)
	return cs, err
}

// CurrencyHistory returns the price candlesticks of a currency.
func (c *Client) CurrencyHistory(ctx context.Context, q CurrencyHistoryQuery) ([]wellets.KLine, error) {
	var ks []wellets.KLine
	err := c.list(ctx, "/currencies/history", q.values(), "history", &ks)
	return ks, err
}

// Investments lists investments, all of them if status is empty.
func (c *Client) Investments(ctx context.Context, status string) ([]wellets.Investment, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	var is []wellets.Investment
	err := c.list(ctx, "/investments", q, "investments", &is)
	return is, err
}

// CreateInvestment creates an investment in the "created" status.
func (c *Client) CreateInvestment(ctx context.Context, alias string) (wellets.Investment, error) {
	var i wellets.Investment
	err := c.do(ctx, http.MethodPost, "/investments", nil, investmentRequest{alias}, &i)
	return i, err
}
