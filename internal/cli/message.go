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

func newMessageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Send chat messages from the command line",
	}

	cmd.AddCommand(newMessageSendCmd())
	return cmd
}

func newMessageSendCmd() *cobra.Command {
	var providerID string

	cmd := &cobra.Command{
		Use:   "send [message]",
		Short: "Send one message through the chat pipeline and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")

			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}
			if providerID != "" {
				cfg.Provider.ID = providerID
			}

			orch, _ := buildOrchestrator(cfg, store.NewMemoryStore())

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reply := orch.HandleMessage(ctx, "cli", message)

			fmt.Println(reply.Answer)
			if reply.NeedsTicket {
				hint := "[escalation suggested: a ticket can be created from this conversation]"
				if reply.SuggestCall && reply.SupportPhone != "" {
					hint = fmt.Sprintf("[escalation suggested: create a ticket or call %s]", reply.SupportPhone)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), hint)
			}
			if reply.TicketTitle != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "[suggested ticket title: %s]\n", reply.TicketTitle)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&providerID, "provider", "", "override the configured provider id")

	return cmd
}
