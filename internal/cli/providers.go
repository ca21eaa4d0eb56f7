package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mseguy/aidesk/internal/config"
	"github.com/mseguy/aidesk/internal/logging"
	"github.com/mseguy/aidesk/internal/provider"
)

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the supported AI providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			registry := provider.Default(logging.Nop())
			for _, id := range registry.List() {
				marker := " "
				if id == cfg.Provider.ID {
					marker = "*"
				}
				fmt.Printf("%s %-10s %s\n", marker, id, registry.Label(id))
			}
			return nil
		},
	}
}
