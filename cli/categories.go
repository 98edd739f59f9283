package cli

import (
	"context"
	"flag"

	"github.com/rakadenta/dompet/client"
)

func newCategoryCommand() *Command {
	return &Command{
		Name:        "category",
		Description: "Manage wallet categories",
		Subcommands: map[string]*Command{
			"list":   newCategoryListCommand(),
			"get":    newCategoryGetCommand(),
			"create": newCategoryCreateCommand(),
			"update": newCategoryUpdateCommand(),
			"delete": newCategoryDeleteCommand(),
		},
	}
}

func newCategoryListCommand() *Command {
	cmd := &Command{
		Name:        "list",
		Description: "List categories in a wallet",
		Flags:       flag.NewFlagSet("category list", flag.ContinueOnError),
	}
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			categories, err := app.API.ListCategories(ctx, *walletID)
			if err != nil {
				return app.reportError(err)
			}
			app.renderCategories(categories)
			return nil
		})
	}
	return cmd
}

func newCategoryGetCommand() *Command {
	cmd := &Command{
		Name:        "get",
		Description: "Show one category",
		Flags:       flag.NewFlagSet("category get", flag.ContinueOnError),
	}
	id := cmd.Flags.Int64("id", 0, "Category id")
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			category, err := app.API.GetCategory(ctx, *id, *walletID)
			if err != nil {
				return app.reportError(err)
			}
			app.renderCategories([]client.Category{*category})
			return nil
		})
	}
	return cmd
}

func newCategoryCreateCommand() *Command {
	cmd := &Command{
		Name:        "create",
		Description: "Create a category in a wallet",
		Flags:       flag.NewFlagSet("category create", flag.ContinueOnError),
	}
	name := cmd.Flags.String("name", "", "Category name")
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			category, err := app.API.CreateCategory(ctx, *name, *walletID)
			if err != nil {
				return app.reportError(err)
			}
			app.renderCategories([]client.Category{*category})
			return nil
		})
	}
	return cmd
}

func newCategoryUpdateCommand() *Command {
	cmd := &Command{
		Name:        "update",
		Description: "Rename a category",
		Flags:       flag.NewFlagSet("category update", flag.ContinueOnError),
	}
	id := cmd.Flags.Int64("id", 0, "Category id")
	name := cmd.Flags.String("name", "", "Category name")
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			category, err := app.API.UpdateCategory(ctx, *id, *name, *walletID)
			if err != nil {
				return app.reportError(err)
			}
			app.renderCategories([]client.Category{*category})
			return nil
		})
	}
	return cmd
}

func newCategoryDeleteCommand() *Command {
	cmd := &Command{
		Name:        "delete",
		Description: "Delete a category",
		Flags:       flag.NewFlagSet("category delete", flag.ContinueOnError),
	}
	id := cmd.Flags.Int64("id", 0, "Category id")
	walletID := cmd.Flags.Int64("wallet", 0, "Wallet id")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			if err := app.API.DeleteCategory(ctx, *id, *walletID); err != nil {
				return app.reportError(err)
			}
			app.println("category deleted")
			return nil
		})
	}
	return cmd
}
