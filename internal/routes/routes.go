package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/topup-pay/topup_pay/internal/auth"
	"github.com/topup-pay/topup_pay/internal/billpay"
	"github.com/topup-pay/topup_pay/internal/config"
	"github.com/topup-pay/topup_pay/internal/funding"
	"github.com/topup-pay/topup_pay/internal/history"
	"github.com/topup-pay/topup_pay/internal/middleware"
	"github.com/topup-pay/topup_pay/internal/notification"
	"github.com/topup-pay/topup_pay/internal/session"
	"github.com/topup-pay/topup_pay/internal/upstream"
	"github.com/topup-pay/topup_pay/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Cache    *redis.Client
	Logger   *slog.Logger
	Upstream *upstream.Client
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Upstream == nil {
			return fmt.Errorf("backend client is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Session storage
	var sessions session.Store
	if d.Cache != nil {
		sessions = session.NewRedisStore(d.Cache, d.Cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore()
	}

	// Funding attempt ledger
	var attemptRepo funding.Repository
	if d.DB != nil {
		pg := funding.NewPostgresRepository(d.DB)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("ensure funding schema: %w", err)
		}
		attemptRepo = pg
	} else {
		attemptRepo = funding.NewMemoryRepository()
	}

	// Services and handlers
	notifier := notification.NewLoggerNotifier(d.Logger)

	var checkout funding.Checkout
	var funder funding.Funder
	if d.Upstream != nil {
		checkout = d.Upstream
		funder = d.Upstream
	}

	// Dev fallback so account endpoints fail fast with 502s instead of
	// dereferencing a nil client. Funding still uses the simulated provider.
	backend := d.Upstream
	if backend == nil {
		backend = upstream.NewClient("http://localhost:9090", d.Cfg.UpstreamTimeout)
	}

	walletSvc := wallet.NewService(backend)
	fundingSvc, err := funding.NewService(attemptRepo, checkout, funder, walletSvc, notifier, funding.Config{
		VerifyTimeout:  d.Cfg.VerifyTimeout,
		VerifyAttempts: d.Cfg.VerifyAttempts,
		VerifyBackoff:  d.Cfg.VerifyBackoff,
	})
	if err != nil {
		return err
	}
	historySvc := history.NewService(backend)
	billpaySvc := billpay.NewService(backend)
	authSvc := auth.NewService(backend, sessions)

	authHandler := auth.NewHandler(authSvc)
	walletHandler := wallet.NewHandler(walletSvc)
	fundingHandler := funding.NewHandler(fundingSvc)
	historyHandler := history.NewHandler(historySvc)
	billpayHandler := billpay.NewHandler(billpaySvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5, d.Logger)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	sessionAuth := middleware.SessionAuth(sessions)
	requirePIN := middleware.RequirePIN(sessions)
	protected := api.Group("", sessionAuth)

	RegisterSessionRoutes(protected, authHandler)
	RegisterWalletRoutes(protected, walletHandler)
	RegisterFundingRoutes(protected, fundingHandler, requirePIN)
	RegisterHistoryRoutes(protected, historyHandler)

	var idempotency fiber.Handler
	if d.Cache != nil {
		idempotency = middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger)
	}
	RegisterBillpayRoutes(protected, billpayHandler, requirePIN, idempotency)

	return nil
}
