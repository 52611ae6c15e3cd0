package wellets

import (
	"time"

	"github.com/etnz/wellets/date"
	"github.com/etnz/wellets/duration"
)

// Currency is a currency known by the backend, with its rate against the dollar.
type Currency struct {
	ID         string    `json:"id"`
	Acronym    string    `json:"acronym"`
	Alias      string    `json:"alias"`
	DollarRate float64   `json:"dollar_rate"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UserCurrency is a Currency as seen by a given user.
type UserCurrency struct {
	Currency
	Favorite bool `json:"favorite"`
}

// Wallet is a money account held in a single currency.
type Wallet struct {
	ID          string    `json:"id"`
	Alias       string    `json:"alias"`
	Description string    `json:"description,omitempty"`
	Balance     float64   `json:"balance"`
	CurrencyID  string    `json:"currency_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Portfolios  []string  `json:"portfolios,omitempty"`
	Currency    *Currency `json:"currency,omitempty"`
}

// UserSettings holds the per-user settings stored server-side.
type UserSettings struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CurrencyID string    `json:"currency_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Currency   Currency  `json:"currency"`
}

// User is a registered account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is the result of a successful login. It is persisted locally to
// authenticate the following requests.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WalletAverageLoadPrice is the average price paid for a wallet's currency.
// AverageLoadPrice is nil when the wallet has no entries.
type WalletAverageLoadPrice struct {
	AverageLoadPrice *float64 `json:"average_load_price"`
	BaseCurrency     Currency `json:"base_currency"`
}

// Balance is an amount expressed in a currency.
type Balance struct {
	Balance  float64  `json:"balance"`
	Currency Currency `json:"currency"`
}

// Portfolio groups wallets under a target weight, possibly nested in a parent portfolio.
type Portfolio struct {
	ID        string       `json:"id"`
	Alias     string       `json:"alias"`
	Weight    float64      `json:"weight"` // fraction of the parent, in [0, 1]
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	UserID    string       `json:"user_id"`
	ParentID  string       `json:"parent_id,omitempty"`
	Parent    *Portfolio   `json:"parent,omitempty"`
	Children  []*Portfolio `json:"children,omitempty"`
	Wallets   []Wallet     `json:"wallets,omitempty"`
}

// Flatten returns the parent (if any), the portfolio itself and its children, in that order.
func (p *Portfolio) Flatten() []*Portfolio {
	var ps []*Portfolio
	if p.Parent != nil {
		ps = append(ps, p.Parent)
	}
	ps = append(ps, p)
	return append(ps, p.Children...)
}

// HasWallet reports whether the wallet with this id is attached to the portfolio.
func (p *Portfolio) HasWallet(id string) bool {
	for _, w := range p.Wallets {
		if w.ID == id {
			return true
		}
	}
	return false
}

// RebalanceAction is what the backend advises to do on a portfolio: buy or sell an amount.
type RebalanceAction struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// Format renders the action as "<type> <amount> <acronym>", e.g. "buy 120.00 USD".
func (a RebalanceAction) Format(acronym string) string {
	return a.Type + " " + PP(a.Amount) + " " + acronym
}

// RebalanceChange is the rebalancing advice for one portfolio.
type RebalanceChange struct {
	Portfolio Portfolio       `json:"portfolio"`
	Wallets   []Wallet        `json:"wallets"`
	Target    float64         `json:"target"`
	Actual    float64         `json:"actual"`
	Weight    float64         `json:"weight"`
	OffBy     float64         `json:"off_by"`
	Action    RebalanceAction `json:"action"`
}

// PortfolioRebalance is the rebalancing advice for a portfolio tree, in a currency.
type PortfolioRebalance struct {
	Changes  []RebalanceChange `json:"changes"`
	Currency Currency          `json:"currency"`
}

// Transaction is a single income (positive value) or outcome (negative value) of a wallet.
type Transaction struct {
	ID          string    `json:"id"`
	Value       float64   `json:"value"`
	Description string    `json:"description"`
	WalletID    string    `json:"wallet_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Wallet      Wallet    `json:"wallet"`
}

// AccumulationEntry is a transaction recorded as part of an accumulation plan.
type AccumulationEntry struct {
	ID          string    `json:"id"`
	Value       float64   `json:"value"`
	Description string    `json:"description"`
	WalletID    string    `json:"wallet_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Accumulation is a plan to periodically buy an asset.
type Accumulation struct {
	ID             string              `json:"id"`
	Alias          string              `json:"alias"`
	Strategy       string              `json:"strategy"`
	Quote          float64             `json:"quote"`
	PlannedEntries int                 `json:"planned_entries"`
	Every          duration.Duration   `json:"every"`
	PlannedStart   time.Time           `json:"planned_start"`
	PlannedEnd     time.Time           `json:"planned_end"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	AssetID        string              `json:"asset_id"`
	Entries        []AccumulationEntry `json:"entries"`
}

// NextAccumulationEntry describes the next entry due in an accumulation plan.
type NextAccumulationEntry struct {
	Entry   int       `json:"entry"`
	Amount  float64   `json:"amount"`
	Current float64   `json:"current"`
	Target  float64   `json:"target"`
	Date    time.Time `json:"date"`
}

// Transfer moves money between two wallets.
type Transfer struct {
	ID string `json:"id"`
}

// AssetEntry is a buy (positive value) or sell (negative value) of an asset, at a dollar rate.
type AssetEntry struct {
	ID         string    `json:"id"`
	Value      float64   `json:"value"`
	DollarRate float64   `json:"dollar_rate"`
	AssetID    string    `json:"asset_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Asset is the consolidated holding of a currency across all wallets.
type Asset struct {
	ID         string       `json:"id"`
	Balance    float64      `json:"balance"`
	Entries    []AssetEntry `json:"entries"`
	UserID     string       `json:"user_id"`
	CurrencyID string       `json:"currency_id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	Currency   Currency     `json:"currency"`
}

// AverageLoadPrice is the average cost basis of an asset. It is nil when unknown.
type AverageLoadPrice struct {
	AverageLoadPrice *float64 `json:"average_load_price"`
}

// AssetBalance is the balance of an asset in the preferred currency.
type AssetBalance struct {
	Balance float64 `json:"balance"`
}

// AssetAllocation is the share of an asset in the total balance.
type AssetAllocation struct {
	Balance    float64 `json:"balance"`
	Allocation float64 `json:"allocation"`
	Asset      Asset   `json:"asset"`
}

// Investment statuses.
const (
	InvestmentCreated = "created"
	InvestmentStarted = "started"
	InvestmentClosed  = "closed"
)

// Investment tracks the inputs and outputs of a closed-ended investment.
type Investment struct {
	ID        string     `json:"id"`
	Alias     string     `json:"alias"`
	Status    string     `json:"status"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (i Investment) IsCreated() bool { return i.Status == InvestmentCreated }
func (i Investment) IsActive() bool  { return i.Status == InvestmentStarted }
func (i Investment) IsClosed() bool  { return i.Status == InvestmentClosed }

// HistoryPoint is a balance sampled at a given time. It is used for wallets and assets histories.
type HistoryPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Balance   float64   `json:"balance"`
}

// KLine is a candlestick of a currency price.
type KLine struct {
	OpenTime   time.Time `json:"open_time"`
	OpenPrice  float64   `json:"open_price"`
	HighPrice  float64   `json:"high_price"`
	LowPrice   float64   `json:"low_price"`
	ClosePrice float64   `json:"close_price"`
	Volume     float64   `json:"volume"`
}

// CapitalGain is the gain of an asset according to its average cost basis.
type CapitalGain struct {
	CurrentPrice float64 `json:"current_price"`
	BasisPrice   float64 `json:"basis_price"`
	GainAmount   float64 `json:"gain_amount"`
	GainRate     float64 `json:"gain_rate"`
}

// Find returns the first item matching, and whether one was found.
func Find[T any](items []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// CurrencyByID finds a currency by id.
func CurrencyByID(currencies []Currency, id string) (Currency, bool) {
	return Find(currencies, func(c Currency) bool { return c.ID == id })
}

// CurrencyByAcronym finds a currency by acronym, e.g. "USD".
func CurrencyByAcronym(currencies []Currency, acronym string) (Currency, bool) {
	return Find(currencies, func(c Currency) bool { return c.Acronym == acronym })
}

// WalletByID finds a wallet by id.
func WalletByID(wallets []Wallet, id string) (Wallet, bool) {
	return Find(wallets, func(w Wallet) bool { return w.ID == id })
}

// AssetByID finds an asset by id.
func AssetByID(assets []Asset, id string) (Asset, bool) {
	return Find(assets, func(a Asset) bool { return a.ID == id })
}

// AccumulationByID finds an accumulation by id.
func AccumulationByID(accumulations []Accumulation, id string) (Accumulation, bool) {
	return Find(accumulations, func(a Accumulation) bool { return a.ID == id })
}

// BalanceHistory indexes history points by day. The last point of a day wins.
func BalanceHistory(points []HistoryPoint) *date.History[float64] {
	h := new(date.History[float64])
	for _, p := range points {
		h.Append(date.Of(p.Timestamp), p.Balance)
	}
	return h
}
