package main

import (
	"context"
	"fmt"

	"github.com/mkarpelev/paymentgate/internal/adapter/auth"
	"github.com/mkarpelev/paymentgate/internal/adapter/client/provider"
	"github.com/mkarpelev/paymentgate/internal/adapter/config"
	"github.com/mkarpelev/paymentgate/internal/adapter/handler/http"
	"github.com/mkarpelev/paymentgate/internal/adapter/logger"
	"github.com/mkarpelev/paymentgate/internal/adapter/storage"
	"github.com/mkarpelev/paymentgate/internal/adapter/storage/repository"
	"github.com/mkarpelev/paymentgate/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("ledger repo creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	providerClient, err := provider.NewClient(conf.Provider, log.Named("Provider"))
	if err != nil {
		log.Error("provider client creating error", zap.Error(err))
		return
	}

	svc, err := service.NewService(repo, providerClient, log.Named("Service"))
	if err != nil {
		log.Error("payment service creating error", zap.Error(err))
		return
	}

	checkoutHandler, err := http.NewCheckoutHandler(svc, log.Named("Checkout handler"))
	if err != nil {
		log.Error("checkout handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	warehouseHandler, err := http.NewWarehouseHandler(svc, log.Named("Warehouse handler"))
	if err != nil {
		log.Error("warehouse handler creating error", zap.Error(err))
		return
	}
	sessionHandler, err := http.NewSessionHandler(tokenService, conf.Auth.AccessKey, log.Named("Session handler"))
	if err != nil {
		log.Error("session handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(conf.HTTP, tokenService,
		checkoutHandler, orderHandler, warehouseHandler, sessionHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
