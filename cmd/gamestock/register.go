package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/gamestock/gamestock-client/internal/logger"
)

type registerCmd struct {
	username string
	email    string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new trading account" }
func (*registerCmd) Usage() string {
	return `gamestock register -username <name> -email <address> -password <secret>

  Creates an account and prints the starting balance.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "account name")
	f.StringVar(&c.email, "email", "", "account email")
	f.StringVar(&c.password, "password", "", "account password")
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.email == "" || c.password == "" {
		fmt.Print(c.Usage())
		return subcommands.ExitUsageError
	}

	a, loggerSync, err := newApp(logger.Warn)
	if err != nil {
		return fail(err)
	}
	defer loggerSync()

	user, err := a.session.Register(ctx, c.username, c.email, c.password)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("registered %s, starting balance %.2f\n", user.Username, user.Balance)
	return subcommands.ExitSuccess
}
