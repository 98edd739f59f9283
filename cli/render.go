package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/rakadenta/dompet/client"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (a *App) renderWallets(wallets []client.Wallet) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	row(w, "ID", "NAME", "INITIAL", "BALANCE")
	for _, wallet := range wallets {
		row(w, wallet.ID, wallet.Name, money(wallet.Balance), money(wallet.CurrentBalance))
	}
}

func (a *App) renderCategories(categories []client.Category) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	row(w, "ID", "NAME")
	for _, category := range categories {
		row(w, category.ID, category.Name)
	}
}

func (a *App) renderTransactions(transactions []client.Transaction) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	row(w, "ID", "DATE", "TYPE", "CATEGORY", "AMOUNT", "DESCRIPTION")
	for _, tx := range transactions {
		row(w, tx.ID, tx.Date, tx.Type, tx.Category, money(tx.Amount), tx.Description)
	}
}

func (a *App) renderStatistics(stats *client.Statistics) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	row(w, "TOTAL TRANSACTION", money(stats.TotalTransaction))
	row(w, "TOTAL INCOME", money(stats.TotalIncome))
	row(w, "TOTAL OUTCOME", money(stats.TotalOutcome))

	if len(stats.ByType) > 0 {
		row(w, "", "")
		row(w, "TYPE", "AMOUNT")
		for _, entry := range stats.ByType {
			row(w, entry.Type, money(entry.Amount))
		}
	}
	if len(stats.ByCategory) > 0 {
		row(w, "", "")
		row(w, "CATEGORY", "AMOUNT")
		for _, entry := range stats.ByCategory {
			row(w, entry.Category, money(entry.Amount))
		}
	}
}

func row(w *tabwriter.Writer, cells ...any) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, cell)
	}
	fmt.Fprintln(w)
}

// reportError turns an error into the user-facing message the original
// forms rendered: field messages for validation failures, a retry hint for
// transport failures, the teardown hint for rejected sessions. The error
// itself still propagates so the process exits non-zero.
func (a *App) reportError(err error) error {
	switch {
	case err == nil:
		return nil
	case client.IsNetworkError(err):
		a.errorf("network error: %v", err)
		a.errorf("check your connection and try again")
	case client.IsUnauthorizedError(err):
		a.errorf("session expired or rejected by the server")
	case client.IsValidationError(err):
		msgs := client.ValidationMessages(err)
		for _, field := range sortedFields(msgs) {
			a.errorf("%s: %s", field, msgs[field])
		}
	default:
		a.errorf("%v", err)
	}
	return err
}

func sortedFields(in map[string]string) []string {
	fields := make([]string, 0, len(in))
	for field := range in {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (a *App) errorf(format string, args ...any) {
	a.Logger.Error(format, args...)
}
