package cli

import (
	"context"
	"flag"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rakadenta/dompet/client"
)

func newTransactionCommand() *Command {
	return &Command{
		Name:        "tx",
		Description: "Manage transactions",
		Subcommands: map[string]*Command{
			"list":    newTransactionListCommand(),
			"delete":  newTransactionDeleteCommand(),
			"income":  newIncomeCommand(),
			"expense": newExpenseCommand(),
		},
	}
}

func newTransactionListCommand() *Command {
	cmd := &Command{
		Name:        "list",
		Description: "List all transactions in a wallet",
		Flags:       flag.NewFlagSet("tx list", flag.ContinueOnError),
	}
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			transactions, err := app.API.ListTransactions(ctx, *walletID)
			if err != nil {
				return app.reportError(err)
			}
			app.renderTransactions(transactions)
			return nil
		})
	}
	return cmd
}

func newTransactionDeleteCommand() *Command {
	cmd := &Command{
		Name:        "delete",
		Description: "Delete a transaction",
		Flags:       flag.NewFlagSet("tx delete", flag.ContinueOnError),
	}
	id := cmd.Flags.Int64("id", 0, "Transaction id")
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			if err := app.API.DeleteTransaction(ctx, *id, *walletID); err != nil {
				return app.reportError(err)
			}
			app.println("transaction deleted")
			return nil
		})
	}
	return cmd
}

func newIncomeCommand() *Command {
	return &Command{
		Name:        "income",
		Description: "List or record income",
		Subcommands: map[string]*Command{
			"list": newIncomeListCommand(),
			"add":  newIncomeAddCommand(),
		},
	}
}

func newIncomeListCommand() *Command {
	cmd := &Command{
		Name:        "list",
		Description: "List income transactions",
		Flags:       flag.NewFlagSet("tx income list", flag.ContinueOnError),
	}
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			transactions, err := app.API.ListIncome(ctx, *walletID)
			if err != nil {
				return app.reportError(err)
			}
			app.renderTransactions(transactions)
			return nil
		})
	}
	return cmd
}

func newIncomeAddCommand() *Command {
	cmd := &Command{
		Name:        "add",
		Description: "Record an income transaction",
		Flags:       flag.NewFlagSet("tx income add", flag.ContinueOnError),
	}
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")
	category := cmd.Flags.String("category", "", "Category name")
	amount := cmd.Flags.String("amount", "", "Amount")
	description := cmd.Flags.String("description", "", "Description")
	source := cmd.Flags.String("source", "", "Income source")
	date := cmd.Flags.String("date", time.Now().Format("2006-01-02"), "Date (YYYY-MM-DD)")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		value, err := decimal.NewFromString(*amount)
		if err != nil {
			app.errorf("amount: must be a number")
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			tx, err := app.API.CreateIncome(ctx, client.IncomePayload{
				Wallet:      client.WalletRef{ID: *walletID},
				Category:    *category,
				Amount:      value,
				Description: *description,
				Source:      *source,
				Date:        *date,
			})
			if err != nil {
				return app.reportError(err)
			}
			app.renderTransactions([]client.Transaction{*tx})
			return nil
		})
	}
	return cmd
}

func newExpenseCommand() *Command {
	return &Command{
		Name:        "expense",
		Description: "List or record expenses",
		Subcommands: map[string]*Command{
			"list": newExpenseListCommand(),
			"add":  newExpenseAddCommand(),
		},
	}
}

func newExpenseListCommand() *Command {
	cmd := &Command{
		Name:        "list",
		Description: "List outcome transactions",
		Flags:       flag.NewFlagSet("tx expense list", flag.ContinueOnError),
	}
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			transactions, err := app.API.ListExpense(ctx, *walletID)
			if err != nil {
				return app.reportError(err)
			}
			app.renderTransactions(transactions)
			return nil
		})
	}
	return cmd
}

func newExpenseAddCommand() *Command {
	cmd := &Command{
		Name:        "add",
		Description: "Record an outcome transaction",
		Flags:       flag.NewFlagSet("tx expense add", flag.ContinueOnError),
	}
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")
	category := cmd.Flags.String("category", "", "Category name")
	amount := cmd.Flags.String("amount", "", "Amount")
	description := cmd.Flags.String("description", "", "Description")
	date := cmd.Flags.String("date", "", "Date (YYYY-MM-DD)")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		value, err := decimal.NewFromString(*amount)
		if err != nil {
			app.errorf("amount: must be a number")
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			tx, err := app.API.CreateExpense(ctx, client.ExpensePayload{
				Wallet:      client.WalletRef{ID: *walletID},
				Category:    *category,
				Amount:      value,
				Description: *description,
				Date:        *date,
			})
			if err != nil {
				return app.reportError(err)
			}
			app.renderTransactions([]client.Transaction{*tx})
			return nil
		})
	}
	return cmd
}
