package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/roden1999/money-tracking-app/internal/config"
	"github.com/roden1999/money-tracking-app/internal/logger"
	"github.com/roden1999/money-tracking-app/internal/outbox"
	"github.com/roden1999/money-tracking-app/internal/store/factory"
)

const (
	pollInterval = 1 * time.Second
	pollBatch    = 100
)

func main() {
	cfgPath := flag.String("config", "internal/config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}

	log, err := logger.NewLogger()
	if err != nil {
		panic(fmt.Errorf("init logger: %w", err))
	}
	defer log.Sync()

	st, err := factory.NewStore(cfg, log)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}
	defer st.Close()

	kw := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Kafka.Brokers...),
		Topic:    cfg.Kafka.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer kw.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pub := outbox.NewPublisher(st.Outbox(), kw, log)
	log.Info("ledger event poller started")
	pub.Run(ctx, pollInterval, pollBatch)
	log.Info("ledger event poller stopped")
}
