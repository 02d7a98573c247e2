package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	adminapp "wallet-gateway/internal/application/admin"
	authapp "wallet-gateway/internal/application/auth"
	ledgerapp "wallet-gateway/internal/application/ledger"
	pricingapp "wallet-gateway/internal/application/pricing"
	profileapp "wallet-gateway/internal/application/profile"
	walletapp "wallet-gateway/internal/application/wallet"
	"wallet-gateway/internal/infrastructure/config"
	otelinfra "wallet-gateway/internal/infrastructure/observability/otel"
	"wallet-gateway/internal/presentation/rest/handler"
	restmiddleware "wallet-gateway/internal/presentation/rest/middleware"
)

// Router REST APIルーター
type Router struct {
	echo              *echo.Echo
	ledgerHandler     *handler.LedgerHandler
	walletHandler     *handler.WalletHandler
	profileHandler    *handler.ProfileHandler
	authHandler       *handler.AuthHandler
	adminUsersHandler *handler.AdminUsersHandler
	pricingHandler    *handler.PricingHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	ledgerService *ledgerapp.LedgerApplicationService,
	walletService *walletapp.WalletApplicationService,
	profileService *profileapp.ProfileApplicationService,
	authService *authapp.AuthApplicationService,
	adminService *adminapp.AdminApplicationService,
	pricingService *pricingapp.PricingApplicationService,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	setupMiddleware(e, cfg, logger, metrics)

	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	walletHandler := handler.NewWalletHandler(walletService)
	profileHandler := handler.NewProfileHandler(profileService)
	authHandler := handler.NewAuthHandler(authService)
	adminUsersHandler := handler.NewAdminUsersHandler(adminService)
	pricingHandler := handler.NewPricingHandler(pricingService)

	setupRoutes(e, cfg, logger,
		ledgerHandler, walletHandler, profileHandler,
		authHandler, adminUsersHandler, pricingHandler)

	// Swagger UI / ReDoc統合
	SetupSwagger(e)

	return &Router{
		echo:              e,
		ledgerHandler:     ledgerHandler,
		walletHandler:     walletHandler,
		profileHandler:    profileHandler,
		authHandler:       authHandler,
		adminUsersHandler: adminUsersHandler,
		pricingHandler:    pricingHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, cfg *config.Config, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	ledgerHandler *handler.LedgerHandler,
	walletHandler *handler.WalletHandler,
	profileHandler *handler.ProfileHandler,
	authHandler *handler.AuthHandler,
	adminUsersHandler *handler.AdminUsersHandler,
	pricingHandler *handler.PricingHandler,
) {
	// API v1グループ
	api := e.Group("/api/v1")

	// 認証エンドポイント（レート制限のみ、トークン不要）
	authGroup := api.Group("/seed", restmiddleware.RateLimitMiddleware(&cfg.RateLimit, logger))
	authGroup.POST("/request", authHandler.RequestOTP)
	authGroup.POST("/verify", authHandler.VerifyOTP)
	authGroup.POST("/phrase", authHandler.VerifySeedPhrase)

	// 価格エンドポイント（トークン不要）
	api.GET("/prices", pricingHandler.GetQuotes)

	// 認証が必要なエンドポイント
	userGroup := api.Group("", restmiddleware.AuthMiddleware(&cfg.JWT, logger))

	// 台帳エンドポイント
	userGroup.GET("/transaction/history", ledgerHandler.GetTransactionHistory)

	// 入出金申請エンドポイント
	// recieveのスペルはバックエンドの契約に合わせて維持している
	userGroup.POST("/transaction/recieve", walletHandler.SubmitDeposit)
	userGroup.POST("/transaction/send", walletHandler.SubmitWithdrawal)

	// プロフィールエンドポイント
	userGroup.GET("/profile", profileHandler.GetProfile)
	userGroup.PATCH("/profile", profileHandler.UpdateProfile)

	// 管理APIエンドポイント
	adminGroup := api.Group("/admin",
		restmiddleware.AuthMiddleware(&cfg.JWT, logger),
		restmiddleware.AdminGuardMiddleware(&cfg.AdminAPI, logger),
	)
	adminGroup.GET("/transactions", ledgerHandler.GetAdminTransactions)
	adminGroup.PATCH("/transactions/:id", ledgerHandler.UpdateTransactionStatus)
	adminGroup.GET("/users", adminUsersHandler.ListUsers)
	adminGroup.PATCH("/users/:id", adminUsersHandler.UpdateUser)
	adminGroup.DELETE("/users/:id", adminUsersHandler.DeleteUser)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
