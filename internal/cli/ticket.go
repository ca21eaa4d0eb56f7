package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mseguy/aidesk/internal/config"
	"github.com/mseguy/aidesk/internal/store"
)

func newTicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "File support tickets",
	}

	cmd.AddCommand(newTicketCreateCmd())
	return cmd
}

func newTicketCreateCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create [question]",
		Short: "Create a ticket from a user question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}
			if cfg.Ticketing.URL == "" {
				return fmt.Errorf("ticketing.url is not configured")
			}

			orch, _ := buildOrchestrator(cfg, store.NewMemoryStore())

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result := orch.CreateTicket(ctx, question, title)
			if !result.Success {
				return fmt.Errorf("ticket creation failed")
			}

			fmt.Printf("Ticket %s created: %s\n", result.TicketID, result.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "ticket title (derived from the question when omitted)")

	return cmd
}
