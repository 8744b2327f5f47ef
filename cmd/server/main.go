package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ttnguyen-dev/bankcore/internal/adapter/corebanking"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/controller"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/middleware"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/http/router"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/notification"
	"github.com/ttnguyen-dev/bankcore/internal/adapter/repository/postgres"
	"github.com/ttnguyen-dev/bankcore/internal/config"
	"github.com/ttnguyen-dev/bankcore/internal/logger"
	"github.com/ttnguyen-dev/bankcore/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.RunMigrations(migrateCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		cancel()
		log.Fatalf("run migrations: %v", err)
	}
	cancel()

	db, err := postgres.Open(context.Background(), cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	loanRepo := postgres.NewLoanRepository(db)

	sinks := []notification.Sink{notification.NewLogSink()}
	if cfg.TelegramBotToken != "" {
		telegramSink, err := notification.NewTelegramSink(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("init telegram sink: %v", err)
		}
		sinks = append(sinks, telegramSink)
	}
	dispatcher := notification.NewDispatcher(cfg.NotificationWorkers, cfg.NotificationQueueSize, sinks...)
	defer dispatcher.Close()

	authorizer := corebanking.NewClient(cfg.CoreBankingURL, cfg.CoreBankingTimeout)

	transferService := services.NewTransferService(accountRepo, transactionRepo, authorizer, dispatcher)
	accountService := services.NewAccountService(accountRepo, customerRepo)
	transactionService := services.NewTransactionService(transactionRepo)
	customerService := services.NewCustomerService(customerRepo)
	loanService := services.NewLoanService(loanRepo, customerRepo)

	handler := router.New(
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
		controller.NewTransferController(transferService),
		controller.NewAccountController(accountService),
		controller.NewTransactionController(transactionService),
		controller.NewCustomerController(customerService),
		controller.NewLoanController(loanService),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", logger.Fields{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("server shutting down", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", err, nil)
	}
}
