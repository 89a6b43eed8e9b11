package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/app"
	"github.com/vladislavdragonenkov/orders/internal/gateway"
	"github.com/vladislavdragonenkov/orders/internal/version"
)

func main() {
	app.ConfigureLogging(os.Getenv("GATEWAY_LOG_LEVEL"))

	cfg, err := gateway.ConfigFromEnv(os.Getenv)
	if err != nil {
		log.WithError(err).Fatal("некорректная конфигурация шлюза")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":   cfg.HTTPAddr,
		"orders_addr": cfg.OrdersAddr,
	}).WithFields(version.Fields()).Info("запускаем HTTP шлюз")

	if err := gateway.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("шлюз завершился с ошибкой")
	}

	log.Info("HTTP шлюз остановлен")
}
