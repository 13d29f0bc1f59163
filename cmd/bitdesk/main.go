// bitdesk is the interactive terminal client: login screen, order book,
// order entry, match feeds and statistics over the exchange HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/bitdesk/bitdesk/internal/api"
	"github.com/bitdesk/bitdesk/internal/credstore"
	"github.com/bitdesk/bitdesk/internal/services"
	"github.com/bitdesk/bitdesk/internal/session"
	"github.com/bitdesk/bitdesk/internal/views"
	"github.com/bitdesk/bitdesk/pkg/config"
	"github.com/bitdesk/bitdesk/pkg/logger"
	"github.com/bitdesk/bitdesk/pkg/shutdown"
)

func main() {
	configPath := flag.String("config", "", "config file path (.yaml)")
	flag.Parse()

	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Quiet keeps logrus off stdout so it cannot tear the alternate
	// screen; everything still lands in the log file.
	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
		Quiet:      true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := credstore.Open(cfg.CredentialsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open credential store: %v\n", err)
		os.Exit(1)
	}

	navCh := make(chan session.Route, 4)
	navigate := func(r session.Route) {
		select {
		case navCh <- r:
		default:
		}
	}

	var sess *session.Manager
	client := api.New(cfg.APIBaseURL,
		api.WithTokenSource(func() string {
			if sess == nil {
				return ""
			}
			return sess.Token()
		}),
		api.WithUnauthorizedHook(func() {
			if sess != nil {
				sess.HandleUnauthorized()
			}
		}),
	)

	authSvc := services.NewAuthService(client)
	orderSvc := services.NewOrderService(client)
	tradeSvc := services.NewTradeService(client)
	matchSvc := services.NewMatchService(client)
	sess = session.NewManager(authSvc, store, navigate)

	app := views.NewApp(ctx, views.Deps{
		Session: sess,
		Orders:  orderSvc,
		Trades:  tradeSvc,
		Matches: matchSvc,
		Cfg:     cfg,
		Nav:     navCh,
	})
	program := tea.NewProgram(app, tea.WithAltScreen())

	mgr := shutdown.NewManager()
	mgr.OnShutdown(func(context.Context) { program.Quit() })
	mgr.OnShutdown(func(context.Context) {
		if err := store.Close(); err != nil {
			logger.Errorf("close credential store: %v", err)
		}
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		mgr.Shutdown(shutdownCtx)
	}()

	// Picks up persisted credentials before the first frame; an expired
	// token is dropped silently and the login screen stays up.
	sess.Restore(ctx)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ui error: %v\n", err)
		os.Exit(1)
	}
}
