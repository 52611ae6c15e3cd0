package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/etnz/wellets"
	"github.com/etnz/wellets/duration"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

type table struct {
	header []string
	rows   [][]string
}

// parseTables returns the tables of a markdown document, as plain text cells.
func parseTables(t *testing.T, doc string) []table {
	t.Helper()
	src := []byte(doc)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var tables []table
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *east.Table:
			tables = append(tables, table{})
		case *east.TableHeader, *east.TableRow:
			var cells []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				cells = append(cells, cellText(c, src))
			}
			cur := &tables[len(tables)-1]
			if _, ok := n.(*east.TableHeader); ok {
				cur.header = cells
			} else {
				cur.rows = append(cur.rows, cells)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return tables
}

func cellText(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(src))
		case *ast.String:
			b.Write(n.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// singleTable parses doc, expecting exactly one table, and checks its header.
func singleTable(t *testing.T, doc string, header ...string) [][]string {
	t.Helper()
	tables := parseTables(t, doc)
	require.Len(t, tables, 1, "in:\n%s", doc)
	require.Len(t, tables[0].header, len(header))
	for i, h := range header {
		assert.True(t, strings.EqualFold(h, tables[0].header[i]), "header %d: got %q, want %q", i, tables[0].header[i], h)
	}
	return tables[0].rows
}

var (
	usd = wellets.Currency{ID: "c-usd", Acronym: "USD", Alias: "Dollar", DollarRate: 1}
	brl = wellets.Currency{ID: "c-brl", Acronym: "BRL", Alias: "Real", DollarRate: 5.2}
	btc = wellets.Currency{ID: "c-btc", Acronym: "BTC", Alias: "Bitcoin", DollarRate: 0.00002}
	zzz = wellets.Currency{ID: "c-zzz", Acronym: "ZZZ", Alias: "Broken"}
)

func noon(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }

func TestCurrencies(t *testing.T) {
	rows := singleTable(t, Currencies([]wellets.Currency{usd, brl, zzz}, DefaultOptions),
		"ID", "Acronym", "Alias", "Dollar Rate", "USD", "Updated")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"c-usd", "USD", "Dollar", "1", "1"}, rows[0][:5])
	assert.Equal(t, []string{"c-brl", "BRL", "Real", "5.2", "0.19230769"}, rows[1][:5])
	assert.Equal(t, "-", rows[2][4], "a zero rate has no countervalue")
}

func TestWallets(t *testing.T) {
	ws := []wellets.Wallet{
		{ID: "w1", Alias: "Nubank", Balance: 52, CurrencyID: brl.ID, Description: "checking", UpdatedAt: noon(2024, 3, 1)},
		{ID: "w2", Alias: "Ledger", Balance: 0.12345678, Currency: &btc},
		{ID: "w3", Alias: "Lost", Balance: 1, CurrencyID: "unknown"},
	}
	currencies := []wellets.Currency{usd, brl}

	rows := singleTable(t, Wallets(ws, currencies, usd, false, DefaultOptions),
		"ID", "Alias", "Balance", "Countervalue", "Updated", "Description")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"w1", "Nubank", "BRL 52", "USD 10", "2024-03-01", "checking"}, rows[0])
	assert.Equal(t, []string{"BTC 0.12345678", "USD 6,172.84"}, rows[1][2:4])
	assert.Equal(t, "-", rows[1][5])
	assert.Equal(t, []string{"? 1", "-"}, rows[2][2:4])

	compact := singleTable(t, Wallets(ws, currencies, usd, true, DefaultOptions),
		"ID", "Alias", "Balance", "Countervalue", "Updated")
	assert.Len(t, compact, 3)
}

func TestEmpty(t *testing.T) {
	out := Wallets(nil, nil, usd, false, DefaultOptions)
	assert.Contains(t, out, "No wallets.")
	assert.Empty(t, parseTables(t, out))

	out = Transactions(nil, nil, usd, DefaultOptions)
	assert.Contains(t, out, "No transactions.")
}

func TestWallet(t *testing.T) {
	w := wellets.Wallet{ID: "w1", Alias: "Nubank", Balance: 1234.5, CurrencyID: brl.ID, Portfolios: []string{"p1", "p2"}}
	rows := singleTable(t, Wallet(w, []wellets.Currency{brl}, DefaultOptions), "Key", "Value")
	got := map[string]string{}
	for _, r := range rows {
		got[r[0]] = r[1]
	}
	assert.Equal(t, "1,234.5", got["Balance"])
	assert.Equal(t, "BRL", got["Currency"])
	assert.Equal(t, "-", got["Description"])
	assert.Equal(t, "2 attached", got["Portfolios"])
}

func TestPortfolios(t *testing.T) {
	parent := &wellets.Portfolio{ID: "p0", Alias: "all", Weight: 1}
	p := &wellets.Portfolio{
		ID: "p1", Alias: "stocks", Weight: 0.6, Parent: parent,
		Children: []*wellets.Portfolio{{Alias: "us"}, {Alias: "eu"}},
		Wallets:  []wellets.Wallet{{Alias: "Broker"}},
	}
	rows := singleTable(t, Portfolios(p.Flatten()), "ID", "Alias", "Weight", "Parent", "Children", "Wallets")
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"p0", "all", "100%", "-", "-", "-"}, rows[0])
	assert.Equal(t, []string{"p1", "stocks", "60%", "all", "us, eu", "Broker"}, rows[1])
}

func TestRebalance(t *testing.T) {
	r := wellets.PortfolioRebalance{
		Currency: usd,
		Changes: []wellets.RebalanceChange{{
			Portfolio: wellets.Portfolio{Alias: "stocks", Weight: 0.6},
			Target:    600, Actual: 480, Weight: 0.48, OffBy: -0.12,
			Action: wellets.RebalanceAction{Type: "buy", Amount: 120},
		}},
	}
	rows := singleTable(t, Rebalance(r), "Portfolio", "Desired", "Current", "Off By", "Target", "Actual", "Rebalance")
	assert.Equal(t, [][]string{{"stocks", "60%", "48.00%", "-12.00%", "600.00", "480.00", "buy 120.00 USD"}}, rows)
}

func TestTransactions(t *testing.T) {
	ts := []wellets.Transaction{
		{ID: "t1", Value: 52, Description: "salary", Wallet: wellets.Wallet{CurrencyID: brl.ID}},
		{ID: "t2", Value: -0.001, Wallet: wellets.Wallet{Currency: &btc}},
	}
	rows := singleTable(t, Transactions(ts, []wellets.Currency{brl}, usd, DefaultOptions),
		"ID", "Amount", "Equivalent", "Description", "Created")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"t1", "BRL 52", "USD 10.00", "salary"}, rows[0][:4])
	assert.Equal(t, []string{"t2", "BTC -0.001", "USD -50.00", "-"}, rows[1][:4])
}

func TestAccumulations(t *testing.T) {
	a := wellets.Accumulation{
		ID: "a1", Alias: "DCA", Strategy: "linear", Quote: 100, PlannedEntries: 12,
		Every:        duration.MustParse("1M 15d"),
		PlannedStart: noon(2024, 1, 1), PlannedEnd: noon(2024, 12, 1),
		Entries: []wellets.AccumulationEntry{{ID: "e1", Value: 0.002}},
	}
	rows := singleTable(t, Accumulations([]wellets.Accumulation{a}, DefaultOptions),
		"ID", "Alias", "Strategy", "Quote", "Entries", "Every", "Start", "End")
	assert.Equal(t, [][]string{{"a1", "DCA", "linear", "100", "12", "1M 15d", "2024-01-01", "2024-12-01"}}, rows)

	out := AccumulationEntries(a, btc, DefaultOptions)
	assert.Contains(t, out, "1 of 12 entries, every 1M 15d")
	rows = singleTable(t, out, "ID", "Amount", "Created", "Updated", "Description")
	assert.Equal(t, "BTC 0.002", rows[0][1])
}

func TestNextEntry(t *testing.T) {
	rows := singleTable(t, NextEntry(wellets.NextAccumulationEntry{Entry: 3, Amount: 0.5, Target: 1.5, Current: 1, Date: noon(2024, 3, 1)}, DefaultOptions), "Key", "Value")
	assert.Equal(t, [][]string{{"Entry", "3"}, {"Amount", "0.5"}, {"Current", "1"}, {"Target", "1.5"}, {"Date", "2024-03-01"}}, rows)
}

func TestAssets(t *testing.T) {
	asset := wellets.Asset{
		ID: "x1", Balance: 0.5, Currency: btc,
		Entries: []wellets.AssetEntry{
			{ID: "e1", Value: 0.5, DollarRate: 0.000025, CreatedAt: noon(2024, 1, 2)},
			{ID: "e2", Value: 1},
		},
	}
	rows := singleTable(t, Assets([]wellets.Asset{asset}, usd), "ID", "Balance", "Equivalent", "Entries")
	assert.Equal(t, [][]string{{"x1", "BTC 0.5", "USD 25,000", "2"}}, rows)

	rows = singleTable(t, AssetEntries(asset, usd, DefaultOptions),
		"ID", "Amount (BTC)", "Buy Price (USD)", "Buy Amount (USD)", "Equivalent (USD)", "Profit", "Created")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"e1", "0.5", "40,000", "20,000.00", "25,000.00", "25%", "2024-01-02"}, rows[0])
	assert.Equal(t, []string{"e2", "1", "-", "-", "-", "-"}, rows[1][:6], "an entry without rate cannot be valued")
}

func TestAllocations(t *testing.T) {
	as := []wellets.AssetAllocation{{Balance: 1234.56, Allocation: 0.6543, Asset: wellets.Asset{ID: "x1", Currency: btc}}}
	rows := singleTable(t, Allocations(as, usd), "ID", "Asset", "Balance (USD)", "Allocation")
	assert.Equal(t, [][]string{{"x1", "BTC", "1,235", "65.4%"}}, rows)
}

func TestCapitalGain(t *testing.T) {
	rows := singleTable(t, CapitalGain(wellets.CapitalGain{CurrentPrice: 50000, BasisPrice: 40000, GainAmount: 10000, GainRate: 0.25}, usd), "Key", "Value")
	assert.Equal(t, [][]string{
		{"Current Price", "USD 50,000.00"},
		{"Basis Price", "USD 40,000.00"},
		{"Gain", "USD 10,000.00"},
		{"Gain Rate", "25.00%"},
	}, rows)
	assert.Equal(t, "USD -", AverageLoadPrice(nil, usd))
	p := 1234.5
	assert.Equal(t, "USD 1,234.50", AverageLoadPrice(&p, usd))
}

func TestBalanceHistory(t *testing.T) {
	h := wellets.BalanceHistory([]wellets.HistoryPoint{
		{Timestamp: noon(2024, 1, 8), Balance: 12},
		{Timestamp: noon(2024, 1, 1), Balance: 10.5},
	})
	out := BalanceHistory("History for Nubank", "BRL", h, DefaultOptions)
	assert.Contains(t, out, "History for Nubank")
	rows := singleTable(t, out, "Date", "Balance (BRL)")
	assert.Equal(t, [][]string{{"2024-01-01", "10.5"}, {"2024-01-08", "12"}}, rows)
}

func TestInvestments(t *testing.T) {
	started := noon(2024, 2, 1)
	is := []wellets.Investment{
		{ID: "i1", Alias: "house", Status: wellets.InvestmentCreated},
		{ID: "i2", Alias: "car", Status: wellets.InvestmentStarted, StartedAt: &started},
	}
	rows := singleTable(t, Investments(is, DefaultOptions), "ID", "Alias", "Status", "Started", "Ended")
	assert.Equal(t, [][]string{{"i1", "house", "created", "-", "-"}, {"i2", "car", "started", "2024-02-01", "-"}}, rows)
}

func TestConfig(t *testing.T) {
	rows := singleTable(t, Config([]ConfigRow{{"api.url", "http://localhost:3333", "URL"}, {"api.username", "", "user"}}), "Config", "Value", "Description")
	assert.Equal(t, [][]string{{"api.url", "http://localhost:3333", "URL"}, {"api.username", "-", "user"}}, rows)
}

func TestWriteDashboard(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	err := WriteDashboard(&buf, Dashboard{
		Email:      "me@example.com",
		Currency:   usd,
		Total:      1234.5,
		Assets:     []wellets.Asset{{Balance: 0.5, Currency: btc}},
		Portfolios: []*wellets.Portfolio{{Alias: "stocks", Weight: 0.6}},
		Wallets: []wellets.Wallet{
			{Alias: "Nubank", Balance: 52, CurrencyID: brl.ID},
			{Alias: "Empty", Balance: 0, CurrencyID: brl.ID},
		},
		Currencies: []wellets.Currency{brl},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Welcome, me@example.com!")
	assert.Contains(t, out, "Total balance = USD 1,234.50")
	assert.Contains(t, out, "USD 25,000.00")
	assert.Contains(t, out, "60%")
	assert.Contains(t, out, "BRL 52.00")
	assert.NotContains(t, out, "Empty")
}
