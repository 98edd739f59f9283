package cli

import (
	"context"
	"flag"
	"os"
)

func newStatsCommand() *Command {
	cmd := &Command{
		Name:        "stats",
		Description: "Show the dashboard overview for a wallet",
		Flags:       flag.NewFlagSet("stats", flag.ContinueOnError),
	}
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")
	yearly := cmd.Flags.Bool("year", false, "Yearly period instead of the current month")
	full := cmd.Flags.Bool("full", false, "Include categories and transactions")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			if !*full {
				stats, err := app.API.Statistics(ctx, *walletID, *yearly)
				if err != nil {
					return app.reportError(err)
				}
				app.renderStatistics(stats)
				return nil
			}

			overview, err := app.API.Overview(ctx, *walletID, *yearly)
			if err != nil {
				return app.reportError(err)
			}

			app.printf("wallet: %s\n\n", overview.Wallet.Name)
			app.renderStatistics(overview.Statistics)
			app.println()
			app.renderCategories(overview.Categories)
			app.println()
			app.renderTransactions(overview.Transactions)
			return nil
		})
	}
	return cmd
}

func newExportCommand() *Command {
	cmd := &Command{
		Name:        "export",
		Description: "Download the wallet's Excel export",
		Flags:       flag.NewFlagSet("export", flag.ContinueOnError),
	}
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")
	yearly := cmd.Flags.Bool("year", false, "Yearly period instead of the current month")
	out := cmd.Flags.String("out", "transactions.xlsx", "Output file")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			file, err := os.Create(*out)
			if err != nil {
				return app.reportError(err)
			}
			defer file.Close()

			if err := app.API.ExportExcel(ctx, *walletID, *yearly, file); err != nil {
				os.Remove(*out)
				return app.reportError(err)
			}
			app.printf("export written to %s\n", *out)
			return nil
		})
	}
	return cmd
}
