package api

import (
	"context"

	"github.com/etnz/wellets"
)

func (c *Client) Assets(ctx context.Context) ([]wellets.Asset, error) {
	var as []wellets.Asset
	err := c.list(ctx, "/assets", nil, "assets", &as)
	return as, err
}

// AssetBalance is the balance of an asset in the preferred currency.
func (c *Client) AssetBalance(ctx context.Context, assetID string) (wellets.AssetBalance, error) {
	var b wellets.AssetBalance
	err := c.get(ctx, "/assets/balance", assetQuery(assetID), &b)
	return b, err
}

// TotalAssetBalance is the balance of all assets in the preferred currency.
func (c *Client) TotalAssetBalance(ctx context.Context) (wellets.AssetBalance, error) {
	var b wellets.AssetBalance
	err := c.get(ctx, "/assets/total-balance", nil, &b)
	return b, err
}

// AssetAverageLoadPrice is the average cost basis of an asset, in the preferred currency.
func (c *Client) AssetAverageLoadPrice(ctx context.Context, assetID string) (wellets.AverageLoadPrice, error) {
	var p wellets.AverageLoadPrice
	err := c.get(ctx, "/assets/average-load-price", assetQuery(assetID), &p)
	return p, err
}

func (c *Client) AssetAllocations(ctx context.Context) ([]wellets.AssetAllocation, error) {
	var as []wellets.AssetAllocation
	err := c.list(ctx, "/assets/allocations", nil, "allocations", &as)
	return as, err
}

func (c *Client) AssetHistory(ctx context.Context, q HistoryQuery) ([]wellets.HistoryPoint, error) {
	var h []wellets.HistoryPoint
	err := c.list(ctx, "/assets/history", q.values("asset_id"), "history", &h)
	return h, err
}

func (c *Client) CapitalGain(ctx context.Context, assetID string) (wellets.CapitalGain, error) {
	var g wellets.CapitalGain
	err := c.get(ctx, "/assets/capital-gain", assetQuery(assetID), &g)
	return g, err
}

// TotalBalance is the balance of everything the user holds, in the preferred currency.
func (c *Client) TotalBalance(ctx context.Context) (wellets.Balance, error) {
	var b wellets.Balance
	err := c.get(ctx, "/balances/total", nil, &b)
	return b, err
}
