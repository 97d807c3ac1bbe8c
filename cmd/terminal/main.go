package main

import (
	"go.uber.org/zap"

	"tillpoint/internal/cart"
	"tillpoint/internal/checkout"
	"tillpoint/internal/config"
	"tillpoint/internal/inventory"
	"tillpoint/internal/journal"
	"tillpoint/internal/logger"
	"tillpoint/internal/notify"
	"tillpoint/internal/orders"
	"tillpoint/internal/platform"
	"tillpoint/internal/session"
	"tillpoint/internal/transport"
	"tillpoint/internal/void"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	api, err := platform.NewClient(cfg.PlatformBaseURL, cfg.PlatformTimeout)
	if err != nil {
		logger.L().Fatal("platform client", zap.Error(err))
	}

	db := journal.Open(cfg)
	defer db.Close()
	journalRepo := journal.NewRepository(db)

	till := cart.New()
	store := orders.NewStore()
	inv := inventory.NewStore()
	notes := notify.NewAggregator()

	sess := session.NewService(api, cfg.JWTSecret)
	co := checkout.NewService(till, api, store, inv, journalRepo, notes, sess)
	vm := void.NewMachine(api, store, journalRepo, notes, sess)

	h := transport.NewHandler(till, api, store, inv, journalRepo, notes, sess, co, vm, cfg.LowStockThreshold)
	router := transport.NewRouter(h, cfg.JWTSecret)

	logger.L().Info("terminal listening",
		zap.String("port", cfg.AppPort),
		zap.String("platform", cfg.PlatformBaseURL),
	)
	if err := router.Run(":" + cfg.AppPort); err != nil {
		logger.L().Fatal("terminal stopped", zap.Error(err))
	}
}
