package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	adminapp "wallet-gateway/internal/application/admin"
	authapp "wallet-gateway/internal/application/auth"
	ledgerapp "wallet-gateway/internal/application/ledger"
	pricingapp "wallet-gateway/internal/application/pricing"
	profileapp "wallet-gateway/internal/application/profile"
	walletapp "wallet-gateway/internal/application/wallet"
	"wallet-gateway/internal/infrastructure/config"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
	"wallet-gateway/internal/infrastructure/pricecache"
	"wallet-gateway/internal/infrastructure/upstream"
	"wallet-gateway/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("wallet-gateway")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("wallet-gateway")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// バックエンドAPIクライアントの初期化
	client := upstream.NewClient(&cfg.Upstream)

	// 起動時の死活監視（固定回数・固定間隔、バックオフなし）
	probeCtx, probeCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Upstream.ProbeAttempts+1)*(cfg.Upstream.ProbeDelay+cfg.Upstream.Timeout))
	if err := client.Probe(probeCtx, cfg.Upstream.ProbeAttempts, cfg.Upstream.ProbeDelay); err != nil {
		probeCancel()
		log.Fatalf("Backend availability probe failed: %v", err)
	}
	probeCancel()

	// リポジトリの初期化
	transactionRepo := upstream.NewTransactionRepository(client)
	submissionRepo := upstream.NewSubmissionRepository(client)
	userRepo := upstream.NewUserRepository(client)
	authGateway := upstream.NewAuthGateway(client)

	// 価格ソースの初期化（TTLキャッシュ付き）
	priceSource := pricecache.New(
		upstream.NewPriceSource(&cfg.PriceAPI),
		cfg.PriceAPI.CacheTTL,
		metrics,
	)

	// アプリケーションサービスの初期化
	ledgerAppService := ledgerapp.NewLedgerApplicationService(
		transactionRepo,
		logger,
		metrics,
	)

	walletAppService := walletapp.NewWalletApplicationService(
		submissionRepo,
		logger,
		metrics,
	)

	profileAppService := profileapp.NewProfileApplicationService(
		userRepo,
		logger,
		metrics,
	)

	authAppService := authapp.NewAuthApplicationService(
		authGateway,
		logger,
		metrics,
	)

	adminAppService := adminapp.NewAdminApplicationService(
		userRepo,
		logger,
		metrics,
	)

	pricingAppService := pricingapp.NewPricingApplicationService(
		priceSource,
		logger,
		metrics,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		logger,
		metrics,
		ledgerAppService,
		walletAppService,
		profileAppService,
		authAppService,
		adminAppService,
		pricingAppService,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// REST APIサーバーを別ゴルーチンで起動
	go func() {
		log.Printf("REST API server starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("REST API server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	// グレースフルシャットダウン
	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}
