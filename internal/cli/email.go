package cli

import (
	"fmt"

	"github.com/deppfellow/go-invoicing/internal/lib/email"
	"github.com/spf13/cobra"
)

func NewEmailCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Work with the notification email templates",
	}
	cmd.AddCommand(newEmailPreviewCommand())
	return cmd
}

func newEmailPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <template>",
		Short: "Render a template with sample data to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := email.Template(args[0])
			data, ok := email.PreviewData[name]
			if !ok {
				return fmt.Errorf("unknown template %q", args[0])
			}

			body, err := email.Render(name, data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}
}
