package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mseguy/aidesk/internal/chat"
	"github.com/mseguy/aidesk/internal/config"
	"github.com/mseguy/aidesk/internal/gateway"
	"github.com/mseguy/aidesk/internal/provider"
	"github.com/mseguy/aidesk/internal/store"
	"github.com/mseguy/aidesk/internal/ticket"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chat gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Gateway.Port = port
			}
			if bind != "" {
				cfg.Gateway.Bind = bind
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			if err := paths.EnsureDirs(); err != nil {
				return fmt.Errorf("creating data directories: %w", err)
			}

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Session history store (SQLite or in-memory)
			var history chat.HistoryStore
			if cfg.Session.Store == "sqlite" {
				dbPath := cfg.Session.DBPath
				if dbPath == "" {
					dbPath = paths.DefaultDBPath()
				}
				db, err := store.Open(dbPath, log)
				if err != nil {
					return fmt.Errorf("opening database: %w", err)
				}
				defer db.Close()
				history = store.NewHistoryStore(db, log)
			} else {
				history = store.NewMemoryStore()
				log.Info().Msg("using in-memory session store")
			}

			orch, providers := buildOrchestrator(cfg, history)

			srv := gateway.New(cfg, orch, providers, log)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override gateway port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (loopback, lan, custom)")

	return cmd
}

// buildOrchestrator assembles the chat pipeline from a loaded config.
func buildOrchestrator(cfg config.Config, history chat.HistoryStore) (*chat.Orchestrator, *provider.Registry) {
	providers := provider.Default(log)

	tickets := ticket.NewHTTPCreator(ticket.Config{
		BaseURL: cfg.Ticketing.URL,
		APIKey:  cfg.Ticketing.APIKey,
	}, log)

	settings := chat.Settings{
		Provider: provider.Config{
			ID:      cfg.Provider.ID,
			BaseURL: cfg.Provider.BaseURL,
			APIKey:  cfg.Provider.APIKey,
			Model:   cfg.Provider.Model,
		},
		PromptAddendum: cfg.Provider.PromptAddendum,
		SupportPhone:   cfg.Support.Phone,
		Requester:      cfg.Ticketing.Requester,
		Queue:          cfg.Ticketing.Queue,
	}

	return chat.NewOrchestrator(settings, providers, history, tickets, log), providers
}
