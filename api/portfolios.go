package api

import (
	"context"
	"net/http"

	"github.com/etnz/wellets"
)

func (c *Client) Portfolios(ctx context.Context, f PortfolioFilter) ([]*wellets.Portfolio, error) {
	var ps []*wellets.Portfolio
	err := c.list(ctx, "/portfolios", f.values(), "portfolios", &ps)
	return ps, err
}

func (c *Client) Portfolio(ctx context.Context, id string) (*wellets.Portfolio, error) {
	p := new(wellets.Portfolio)
	if err := c.get(ctx, "/portfolios/"+seg(id), nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Client) CreatePortfolio(ctx context.Context, r PortfolioRequest) (*wellets.Portfolio, error) {
	p := new(wellets.Portfolio)
	if err := c.do(ctx, http.MethodPost, "/portfolios", nil, r, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Client) UpdatePortfolio(ctx context.Context, id string, r PortfolioRequest) (*wellets.Portfolio, error) {
	p := new(wellets.Portfolio)
	if err := c.do(ctx, http.MethodPut, "/portfolios/"+seg(id), nil, r, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Client) DeletePortfolio(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/portfolios/"+seg(id), nil, nil, nil)
}

// PortfolioBalance is the balance of all wallets in the portfolio tree, in the preferred currency.
func (c *Client) PortfolioBalance(ctx context.Context, id string) (wellets.Balance, error) {
	var b wellets.Balance
	err := c.get(ctx, "/portfolios/balance", PortfolioFilter{ID: id}.values(), &b)
	return b, err
}

// PortfolioRebalance is the backend advice to reach the portfolio weights.
func (c *Client) PortfolioRebalance(ctx context.Context, id string) (wellets.PortfolioRebalance, error) {
	var r wellets.PortfolioRebalance
	err := c.get(ctx, "/portfolios/rebalance", PortfolioFilter{ID: id}.values(), &r)
	return r, err
}
