package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"storefront/internal/checkout/adapters"
	"storefront/pkg/config"
	"storefront/pkg/logger"
	"storefront/pkg/rabbitmq"
)

func main() {
	cfg := config.LoadForService("NOTIFIER")

	log := logger.New("notifier", cfg.LogLevel, logger.WithFormat(cfg.LogFormat))
	defer log.Sync()

	log.Info("starting notifier")

	conn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
	}
	defer conn.Close()

	consumer, err := adapters.NewCheckoutEventsConsumer(conn, adapters.NewLogNotifier(log), log)
	if err != nil {
		log.Fatal("failed to create checkout events consumer", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		log.Fatal("failed to start consumer", zap.Error(err))
	}
	log.Info("consuming checkout events", zap.String("queue", adapters.NotifierQueue))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("notifier stopped")
}
