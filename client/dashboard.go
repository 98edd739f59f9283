package client

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// statisticsEnvelope is the {status,data} wrapper the statistics endpoint
// responds with.
type statisticsEnvelope struct {
	Data Statistics `json:"data"`
}

// Statistics returns the aggregated dashboard numbers for one wallet, scoped
// to the current month or, with yearly, the current year. All aggregation
// happens server-side; the client only renders.
func (c *Client) Statistics(ctx context.Context, walletID int64, yearly bool) (*Statistics, error) {
	var envelope statisticsEnvelope
	err := c.Get(ctx, "/api/wallets/transactions/statistics", &envelope,
		walletQuery(walletID), yearQuery(yearly))
	if err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// ExportExcel streams the wallet's spreadsheet export into w, covering the
// same period the statistics view shows.
func (c *Client) ExportExcel(ctx context.Context, walletID int64, yearly bool, w io.Writer) error {
	path := fmt.Sprintf("/api/wallets/export-excel/%d", walletID)
	return c.Download(ctx, path, w, yearQuery(yearly))
}

// Overview fetches everything the dashboard shows for one wallet in
// parallel. A single failing fetch fails the whole overview; a 401 from any
// of them tears the session down through the usual handler.
func (c *Client) Overview(ctx context.Context, walletID int64, yearly bool) (*Overview, error) {
	overview := &Overview{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		wallet, err := c.GetWallet(ctx, walletID)
		if err == nil {
			overview.Wallet = wallet
		}
		return err
	})
	g.Go(func() error {
		categories, err := c.ListCategories(ctx, walletID)
		if err == nil {
			overview.Categories = categories
		}
		return err
	})
	g.Go(func() error {
		transactions, err := c.ListTransactions(ctx, walletID)
		if err == nil {
			overview.Transactions = transactions
		}
		return err
	})
	g.Go(func() error {
		stats, err := c.Statistics(ctx, walletID, yearly)
		if err == nil {
			overview.Statistics = stats
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

func yearQuery(yearly bool) RequestOption {
	return WithQuery("isYear", strconv.FormatBool(yearly))
}
