package cli

import (
	"context"
	"flag"

	"github.com/shopspring/decimal"

	"github.com/rakadenta/dompet/client"
)

func newWalletCommand() *Command {
	return &Command{
		Name:        "wallet",
		Description: "Manage wallets",
		Subcommands: map[string]*Command{
			"list":   newWalletListCommand(),
			"get":    newWalletGetCommand(),
			"create": newWalletCreateCommand(),
			"update": newWalletUpdateCommand(),
			"delete": newWalletDeleteCommand(),
		},
	}
}

func newWalletListCommand() *Command {
	cmd := &Command{
		Name:        "list",
		Description: "List wallets",
		Flags:       flag.NewFlagSet("wallet list", flag.ContinueOnError),
	}
	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			wallets, err := app.API.ListWallets(ctx)
			if err != nil {
				return app.reportError(err)
			}
			app.renderWallets(wallets)
			return nil
		})
	}
	return cmd
}

func newWalletGetCommand() *Command {
	cmd := &Command{
		Name:        "get",
		Description: "Show one wallet",
		Flags:       flag.NewFlagSet("wallet get", flag.ContinueOnError),
	}
	id := cmd.Flags.Int64("id", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			wallet, err := app.API.GetWallet(ctx, *id)
			if err != nil {
				return app.reportError(err)
			}
			app.renderWallets([]client.Wallet{*wallet})
			return nil
		})
	}
	return cmd
}

func newWalletCreateCommand() *Command {
	cmd := &Command{
		Name:        "create",
		Description: "Create a wallet",
		Flags:       flag.NewFlagSet("wallet create", flag.ContinueOnError),
	}
	name := cmd.Flags.String("name", "", "Wallet name")
	balance := cmd.Flags.String("balance", "0", "Initial balance")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		amount, err := decimal.NewFromString(*balance)
		if err != nil {
			app.errorf("balance: must be a number")
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			wallet, err := app.API.CreateWallet(ctx, client.WalletPayload{
				Name:    *name,
				Balance: amount,
			})
			if err != nil {
				return app.reportError(err)
			}
			app.renderWallets([]client.Wallet{*wallet})
			return nil
		})
	}
	return cmd
}

func newWalletUpdateCommand() *Command {
	cmd := &Command{
		Name:        "update",
		Description: "Update a wallet",
		Flags:       flag.NewFlagSet("wallet update", flag.ContinueOnError),
	}
	id := cmd.Flags.Int64("id", 0, "Wallet id")
	name := cmd.Flags.String("name", "", "Wallet name")
	balance := cmd.Flags.String("balance", "0", "Initial balance")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		amount, err := decimal.NewFromString(*balance)
		if err != nil {
			app.errorf("balance: must be a number")
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			wallet, err := app.API.UpdateWallet(ctx, *id, client.WalletPayload{
				Name:    *name,
				Balance: amount,
			})
			if err != nil {
				return app.reportError(err)
			}
			app.renderWallets([]client.Wallet{*wallet})
			return nil
		})
	}
	return cmd
}

func newWalletDeleteCommand() *Command {
	cmd := &Command{
		Name:        "delete",
		Description: "Delete a wallet",
		Flags:       flag.NewFlagSet("wallet delete", flag.ContinueOnError),
	}
	id := cmd.Flags.Int64("id", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			if err := app.API.DeleteWallet(ctx, *id); err != nil {
				return app.reportError(err)
			}
			app.println("wallet deleted")
			return nil
		})
	}
	return cmd
}
