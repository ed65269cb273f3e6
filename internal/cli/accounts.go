package cli

import (
	"fmt"

	"github.com/deppfellow/go-invoicing/internal/lib/utils"
	"github.com/deppfellow/go-invoicing/internal/service"
	"github.com/spf13/cobra"
)

func NewUserCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage dashboard users",
	}
	cmd.AddCommand(newUserCreateCommand(rt))
	return cmd
}

func newUserCreateCommand(rt *Runtime) *cobra.Command {
	var in service.NewUser

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user that can sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, closeFn, err := rt.OpenAccounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer closeFn()

			user, err := accounts.CreateUser(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			return utils.PrintJSON(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "sign-in email")
	cmd.Flags().StringVar(&in.Password, "password", "", "password, at least 6 characters")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func NewCustomerCommand(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}
	cmd.AddCommand(newCustomerCreateCommand(rt))
	return cmd
}

func newCustomerCreateCommand(rt *Runtime) *cobra.Command {
	var in service.NewCustomer

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a customer invoices can be billed to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, closeFn, err := rt.OpenAccounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer closeFn()

			customer, err := accounts.CreateCustomer(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("create customer: %w", err)
			}
			return utils.PrintJSON(cmd.OutOrStdout(), customer)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&in.Email, "email", "", "customer email")
	cmd.Flags().StringVar(&in.ImageURL, "image-url", "", "avatar URL or /path")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
