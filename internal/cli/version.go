package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabletop/pkg/tabletop"
)

const modulePath = "github.com/mesh-intelligence/tabletop"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tabletop version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tabletop v%s\nmodule: %s\n", tabletop.Version, modulePath)
			return nil
		},
	}
}
