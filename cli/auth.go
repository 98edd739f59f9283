package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rakadenta/dompet/client"
)

func newLoginCommand() *Command {
	cmd := &Command{
		Name:        "login",
		Description: "Authenticate and store the session token",
		Flags:       flag.NewFlagSet("login", flag.ContinueOnError),
	}
	username := cmd.Flags.String("username", "", "Account username")
	password := cmd.Flags.String("password", "", "Account password (prompted when omitted)")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}

		user := *username
		pass := *password
		if user == "" {
			user = prompt("username: ")
		}
		if pass == "" {
			pass = prompt("password: ")
		}

		if _, err := app.API.Login(ctx, user, pass); err != nil {
			if client.IsUnauthorizedError(err) {
				// Bad credentials: a local form error, not a session event.
				app.errorf("invalid username or password")
				return err
			}
			return app.reportError(err)
		}

		app.Session.LoginSuccess()
		app.println("signed in")
		return nil
	}
	return cmd
}

func newLogoutCommand() *Command {
	cmd := &Command{
		Name:        "logout",
		Description: "End the session locally and best-effort server-side",
		Flags:       flag.NewFlagSet("logout", flag.ContinueOnError),
	}
	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		app.Session.Logout(ctx)
		app.println("signed out")
		return nil
	}
	return cmd
}

func newRegisterCommand() *Command {
	cmd := &Command{
		Name:        "register",
		Description: "Create an account and sign in",
		Flags:       flag.NewFlagSet("register", flag.ContinueOnError),
	}
	name := cmd.Flags.String("name", "", "Display name")
	username := cmd.Flags.String("username", "", "Account username")
	password := cmd.Flags.String("password", "", "Account password (prompted when omitted)")

	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}

		pass := *password
		if pass == "" {
			pass = prompt("password: ")
		}

		if _, err := app.API.Register(ctx, *name, *username, pass); err != nil {
			return app.reportError(err)
		}

		app.Session.LoginSuccess()
		app.println("account created, signed in")
		return nil
	}
	return cmd
}

func newWhoamiCommand() *Command {
	cmd := &Command{
		Name:        "whoami",
		Description: "Show the authenticated user",
		Flags:       flag.NewFlagSet("whoami", flag.ContinueOnError),
	}
	cmd.Run = func(ctx context.Context, app *App, args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		return app.Protected(ctx, func(ctx context.Context) error {
			user, err := app.API.Me(ctx)
			if err != nil {
				return app.reportError(err)
			}
			app.printf("%s (%s)\n", user.Name, user.Username)

			if claims, err := app.Session.Inspector().Claims(); err == nil && !claims.ExpiresAt.IsZero() {
				app.printf("session valid until %s\n", claims.ExpiresAt.Format(time.RFC1123))
			}
			return nil
		})
	}
	return cmd
}

func prompt(label string) string {
	fmt.Fprint(os.Stderr, label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
