package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/etnz/wellets"
)

func (c *Client) Transactions(ctx context.Context, f TransactionFilter) ([]wellets.Transaction, error) {
	var ts []wellets.Transaction
	err := c.list(ctx, "/transactions", f.values(), "transactions", &ts)
	return ts, err
}

func (c *Client) CreateTransaction(ctx context.Context, r TransactionRequest) (wellets.Transaction, error) {
	var t wellets.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions", nil, r, &t)
	return t, err
}

// RevertTransaction creates the opposite transaction of id.
func (c *Client) RevertTransaction(ctx context.Context, id string) (wellets.Transaction, error) {
	var t wellets.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions/"+seg(id)+"/revert", nil, nil, &t)
	return t, err
}

func (c *Client) CreateTransfer(ctx context.Context, r TransferRequest) (wellets.Transfer, error) {
	var t wellets.Transfer
	err := c.do(ctx, http.MethodPost, "/transfers", nil, r, &t)
	return t, err
}

// Accumulations lists accumulation plans, of a single asset if assetID is not empty.
func (c *Client) Accumulations(ctx context.Context, assetID string) ([]wellets.Accumulation, error) {
	var q url.Values
	if assetID != "" {
		q = assetQuery(assetID)
	}
	var as []wellets.Accumulation
	err := c.list(ctx, "/accumulations", q, "accumulations", &as)
	return as, err
}

func (c *Client) CreateAccumulation(ctx context.Context, r AccumulationRequest) (wellets.Accumulation, error) {
	var a wellets.Accumulation
	err := c.do(ctx, http.MethodPost, "/accumulations", nil, r, &a)
	return a, err
}

func (c *Client) DeleteAccumulation(ctx context.Context, id string) (wellets.Accumulation, error) {
	var a wellets.Accumulation
	err := c.do(ctx, http.MethodDelete, "/accumulations/"+seg(id), nil, nil, &a)
	return a, err
}

func (c *Client) NextAccumulationEntry(ctx context.Context, id string) (wellets.NextAccumulationEntry, error) {
	var e wellets.NextAccumulationEntry
	err := c.get(ctx, "/accumulations/"+seg(id)+"/next-entry", nil, &e)
	return e, err
}
