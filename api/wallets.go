package api

import (
	"context"
	"net/http"

	"github.com/etnz/wellets"
)

// Wallets lists the wallets of the user.
func (c *Client) Wallets(ctx context.Context) ([]wellets.Wallet, error) {
	var ws []wellets.Wallet
	err := c.list(ctx, "/wallets", nil, "wallets", &ws)
	return ws, err
}

// Wallet gets a wallet, with its currency.
func (c *Client) Wallet(ctx context.Context, id string) (wellets.Wallet, error) {
	var w wellets.Wallet
	err := c.get(ctx, "/wallets/"+seg(id), nil, &w)
	return w, err
}

func (c *Client) CreateWallet(ctx context.Context, r CreateWalletRequest) (wellets.Wallet, error) {
	var w wellets.Wallet
	err := c.do(ctx, http.MethodPost, "/wallets", nil, r, &w)
	return w, err
}

func (c *Client) UpdateWallet(ctx context.Context, id string, r UpdateWalletRequest) (wellets.Wallet, error) {
	var w wellets.Wallet
	err := c.do(ctx, http.MethodPut, "/wallets/"+seg(id), nil, r, &w)
	return w, err
}

// DeleteWallet deletes a wallet and all its transactions.
func (c *Client) DeleteWallet(ctx context.Context, id string) (wellets.Wallet, error) {
	var w wellets.Wallet
	err := c.do(ctx, http.MethodDelete, "/wallets/"+seg(id), nil, nil, &w)
	return w, err
}

func (c *Client) WalletBalance(ctx context.Context, id string) (wellets.Balance, error) {
	var b wellets.Balance
	err := c.get(ctx, "/wallets/"+seg(id)+"/balance", nil, &b)
	return b, err
}

func (c *Client) WalletAverageLoadPrice(ctx context.Context, id string) (wellets.WalletAverageLoadPrice, error) {
	var p wellets.WalletAverageLoadPrice
	err := c.get(ctx, "/wallets/"+seg(id)+"/average-load-price", nil, &p)
	return p, err
}

// WalletsTotalBalance is the sum of all wallets in the preferred currency.
func (c *Client) WalletsTotalBalance(ctx context.Context) (wellets.Balance, error) {
	var b wellets.Balance
	err := c.get(ctx, "/wallets/total-balance", nil, &b)
	return b, err
}

func (c *Client) WalletHistory(ctx context.Context, q HistoryQuery) ([]wellets.HistoryPoint, error) {
	var h []wellets.HistoryPoint
	err := c.list(ctx, "/wallets/history", q.values("wallet_id"), "history", &h)
	return h, err
}
