// Package cli implements the invoicing-cli admin commands.
package cli

import (
	"context"

	"github.com/deppfellow/go-invoicing/internal/model"
	"github.com/deppfellow/go-invoicing/internal/service"
	"github.com/spf13/cobra"
)

// Accounts creates the rows an operator seeds by hand.
type Accounts interface {
	CreateUser(ctx context.Context, in service.NewUser) (*model.User, error)
	CreateCustomer(ctx context.Context, in service.NewCustomer) (*model.Customer, error)
}

// Runtime is what the commands need from the outside world. Commands open
// resources lazily so --help works without a database.
type Runtime struct {
	Migrate      func(ctx context.Context) error
	OpenAccounts func(ctx context.Context) (Accounts, func(), error)
}

func NewRootCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "invoicing-cli",
		Short:         "Administer the invoicing database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewMigrateCommand(rt))
	cmd.AddCommand(NewUserCommand(rt))
	cmd.AddCommand(NewCustomerCommand(rt))
	cmd.AddCommand(NewEmailCommand())

	return cmd
}
