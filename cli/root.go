// Package cli implements the dompet command tree: the terminal rendition of
// the dashboard's pages and forms over the shared session core.
package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"
)

// Command is one node of the CLI tree. Leaves carry a Run func and a flag
// set; branches carry subcommands.
type Command struct {
	Name        string
	Description string
	Flags       *flag.FlagSet
	Run         func(ctx context.Context, app *App, args []string) error
	Subcommands map[string]*Command
}

// NewRootCommand assembles the full command tree.
func NewRootCommand() *Command {
	root := &Command{
		Name:        "dompet",
		Description: "dompet - personal finance dashboard client",
		Subcommands: map[string]*Command{},
	}

	root.Subcommands["login"] = newLoginCommand()
	root.Subcommands["logout"] = newLogoutCommand()
	root.Subcommands["register"] = newRegisterCommand()
	root.Subcommands["whoami"] = newWhoamiCommand()
	root.Subcommands["wallet"] = newWalletCommand()
	root.Subcommands["category"] = newCategoryCommand()
	root.Subcommands["tx"] = newTransactionCommand()
	root.Subcommands["stats"] = newStatsCommand()
	root.Subcommands["export"] = newExportCommand()

	return root
}

// Execute resolves the command path in args and runs the matching leaf.
func (c *Command) Execute(ctx context.Context, app *App, args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		return c.usage(app)
	}

	sub, ok := c.Subcommands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", args[0])
	}

	if sub.Run == nil {
		return sub.Execute(ctx, app, args[1:])
	}
	return sub.Run(ctx, app, args[1:])
}

func (c *Command) usage(app *App) error {
	app.printf("Usage: %s <command> [args]\n\n", c.Name)
	app.printf("Commands:\n")

	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		app.printf("  %-12s %s\n", name, c.Subcommands[name].Description)
	}
	return nil
}
