// book-watcher is the headless sibling of the interactive client: it
// polls the order book and market statistics and logs the top of book.
// Useful for keeping an eye on the market from a plain terminal or a
// log shipper.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bitdesk/bitdesk/internal/api"
	"github.com/bitdesk/bitdesk/internal/credstore"
	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/internal/poll"
	"github.com/bitdesk/bitdesk/internal/services"
	"github.com/bitdesk/bitdesk/pkg/config"
	"github.com/bitdesk/bitdesk/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "config file path (.yaml)")
	depth := flag.Int("depth", 5, "book levels to log per side")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	// Reuses the interactive client's persisted token when present.
	var token string
	if store, err := credstore.Open(cfg.CredentialsDir); err == nil {
		if t, _, ok, err := store.Credentials(); err == nil && ok {
			token = t
		}
		_ = store.Close()
	} else {
		logger.Warnf("credential store unavailable, polling unauthenticated: %v", err)
	}

	client := api.New(cfg.APIBaseURL,
		api.WithTokenSource(func() string { return token }),
	)
	orderSvc := services.NewOrderService(client)
	tradeSvc := services.NewTradeService(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bookPoller := poll.New("book", cfg.BookInterval, orderSvc.Book)
	statsPoller := poll.New("statistics", cfg.StatsInterval, tradeSvc.Statistics)
	bookPoller.Start(ctx)
	statsPoller.Start(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	log := logger.WithField("module", "book-watcher")
	for {
		select {
		case <-sigCh:
			log.Info("shutting down")
			cancel()
			bookPoller.Stop()
			statsPoller.Stop()
			return
		case snap := <-bookPoller.Updates():
			if snap.Err != nil {
				continue
			}
			logBook(snap.Value, *depth)
		case snap := <-statsPoller.Updates():
			if snap.Err != nil {
				continue
			}
			s := snap.Value
			log.Infof("stats last=%s high=%s low=%s vol=%s",
				domain.FormatUSDFixed(s.LastPrice),
				domain.FormatUSDFixed(s.High),
				domain.FormatUSDFixed(s.Low),
				domain.FormatBTCSuffix(s.BTCVolume))
		}
	}
}

func logBook(book domain.OrderBook, depth int) {
	log := logger.WithField("module", "book-watcher")
	bids := book.Bids
	if len(bids) > depth {
		bids = bids[:depth]
	}
	asks := book.Asks
	if len(asks) > depth {
		asks = asks[:depth]
	}
	for i, lvl := range bids {
		log.Infof("bid[%d] %s %s", i, domain.FormatUSD(lvl.Price), domain.FormatBTC(lvl.Volume))
	}
	for i, lvl := range asks {
		log.Infof("ask[%d] %s %s", i, domain.FormatUSD(lvl.Price), domain.FormatBTC(lvl.Volume))
	}
	if len(bids) == 0 && len(asks) == 0 {
		log.Info("book empty")
	}
}
