package api

import (
	"net/url"
	"strconv"
	"time"

	"github.com/etnz/wellets/date"
	"github.com/etnz/wellets/duration"
)

// Credentials are used both to log in and to register.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type settingsRequest struct {
	CurrencyID string `json:"currency_id"`
}

// CreateWalletRequest creates a wallet in a currency.
type CreateWalletRequest struct {
	Alias       string  `json:"alias"`
	Description *string `json:"description"`
	CurrencyID  string  `json:"currency_id"`
}

// UpdateWalletRequest edits a wallet. Changing the balance directly bypasses
// transactions, prefer a balance transaction.
type UpdateWalletRequest struct {
	Alias       string  `json:"alias"`
	Description *string `json:"description"`
	Balance     float64 `json:"balance"`
}

// PortfolioRequest creates or edits a portfolio. Weight is a fraction of the parent in [0, 1].
type PortfolioRequest struct {
	Alias     string   `json:"alias"`
	Weight    float64  `json:"weight"`
	ParentID  *string  `json:"parent_id"`
	WalletIDs []string `json:"wallet_ids"`
}

// PortfolioFilter selects portfolios. Without ID only the roots are listed,
// unless ShowAll is set.
type PortfolioFilter struct {
	ID      string
	ShowAll bool
}

func (f PortfolioFilter) values() url.Values {
	q := url.Values{}
	if f.ID != "" {
		q.Set("portfolio_id", f.ID)
	}
	if f.ShowAll {
		q.Set("show_all", "true")
	}
	return q
}

// TransactionRequest records an income (positive value) or an outcome
// (negative value) on a wallet, at a dollar rate.
type TransactionRequest struct {
	WalletID       string    `json:"wallet_id"`
	AccumulationID *string   `json:"accumulation_id"`
	Value          float64   `json:"value"`
	DollarRate     float64   `json:"dollar_rate"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionFilter pages through the transactions of a wallet.
type TransactionFilter struct {
	WalletID string
	Limit    int
	Page     int
}

func (f TransactionFilter) values() url.Values {
	q := url.Values{}
	q.Set("wallet_id", f.WalletID)
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

// TransferRequest moves Value from a wallet to another. PercentualFee is a
// fraction of Value, StaticFee is in the currency of the source wallet.
type TransferRequest struct {
	FromWalletID  string  `json:"from_wallet_id"`
	ToWalletID    string  `json:"to_wallet_id"`
	PercentualFee float64 `json:"percentual_fee"`
	StaticFee     float64 `json:"static_fee"`
	Value         float64 `json:"value"`
}

// AccumulationRequest plans PlannedEntries buys of an asset, one Every period.
type AccumulationRequest struct {
	AssetID        string            `json:"asset_id"`
	Alias          string            `json:"alias"`
	Strategy       string            `json:"strategy"`
	Quote          float64           `json:"quote"`
	PlannedEntries int               `json:"planned_entries"`
	Every          duration.Duration `json:"every"`
	PlannedStart   time.Time         `json:"planned_start"`
	PlannedEnd     time.Time         `json:"planned_end"`
}

type investmentRequest struct {
	Alias string `json:"alias"`
}

// HistoryQuery samples the balance of a wallet or an asset over a date range.
type HistoryQuery struct {
	ID       string
	Range    date.Range
	Interval date.Interval
}

func (h HistoryQuery) values(idKey string) url.Values {
	q := url.Values{}
	q.Set(idKey, h.ID)
	q.Set("start", h.Range.From.String())
	q.Set("end", h.Range.To.String())
	q.Set("interval", h.Interval.String())
	return q
}

// CurrencyHistoryQuery gets the candlesticks of a currency over a date range.
type CurrencyHistoryQuery struct {
	CurrencyID string
	Range      date.Range
	Interval   date.Interval
}

func (h CurrencyHistoryQuery) values() url.Values {
	q := url.Values{}
	q.Set("currency_id", h.CurrencyID)
	q.Set("interval", h.Interval.String())
	q.Set("start_time", h.Range.From.String())
	q.Set("end_time", h.Range.To.String())
	return q
}

func assetQuery(assetID string) url.Values { return url.Values{"asset_id": {assetID}} }
