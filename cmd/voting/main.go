package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aetheria-gallery/aetheria/internal/adapter"
	"github.com/aetheria-gallery/aetheria/internal/api/rest"
	"github.com/aetheria-gallery/aetheria/internal/api/server"
	"github.com/aetheria-gallery/aetheria/internal/auth"
	"github.com/aetheria-gallery/aetheria/internal/config"
	"github.com/aetheria-gallery/aetheria/internal/logger"
	"github.com/aetheria-gallery/aetheria/internal/store"
	"github.com/aetheria-gallery/aetheria/internal/voting"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadVotingServiceConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "aetheria-voting",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Aetheria voting service")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	// The balance gate only needs an RPC connection when configured
	var ethClient adapter.EthClient
	var minBalance *big.Int
	if cfg.Voting.MinBalanceWei != "" {
		minBalance, _ = new(big.Int).SetString(cfg.Voting.MinBalanceWei, 10)
		if minBalance == nil {
			logger.FatalCtx(ctx, "Invalid voting.min_balance_wei", zap.String("value", cfg.Voting.MinBalanceWei))
		}
		if cfg.Ethereum.RPCURL == "" {
			logger.FatalCtx(ctx, "voting.min_balance_wei requires ethereum.rpc_url")
		}
		ethClient, err = adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err), zap.String("rpc_url", cfg.Ethereum.RPCURL))
		}
		defer ethClient.Close()
		logger.InfoCtx(ctx, "Balance gate enabled", zap.String("min_balance_wei", minBalance.String()))
	}

	votingService := voting.NewService(dataStore, ethClient, minBalance, cfg.Voting.FeaturedLimit)
	tokens := auth.NewJWTIssuer(cfg.Session.JWTSecret, cfg.Session.TokenTTL, adapter.NewClock())
	handler := rest.NewVotingHandler(votingService)

	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	srv := server.New(serverConfig, func(router *gin.Engine) {
		rest.SetupVotingRoutes(router, handler, tokens)
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Voting service stopped")
}
