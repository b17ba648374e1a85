package app

import (
	"time"

	"networth-backend/internal/accounts"
	"networth-backend/internal/assets"
	"networth-backend/internal/cash"
	"networth-backend/internal/config"
	"networth-backend/internal/crypto"
	"networth-backend/internal/database"
	"networth-backend/internal/health"
	"networth-backend/internal/investments"
	"networth-backend/internal/middleware"
	"networth-backend/internal/portfolio"
	"networth-backend/internal/quotes"
	"networth-backend/internal/transactions"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all middleware and route registration.
// The returned portfolio service is also what the scheduler jobs run against.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, *portfolio.Service, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, nil, err
	}

	// Optional Redis quote cache; absent REDIS_URL means every quote is a
	// fresh provider call.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	var stocks quotes.Quoter = quotes.NewYahooClient(cfg.QuoteTimeout, log.Logger)
	var coins quotes.Quoter = quotes.NewCoinGeckoClient(cfg.QuoteCurrency, cfg.QuoteTimeout, log.Logger)
	if rdb != nil {
		stocks = quotes.NewCachedQuoter(stocks, rdb, "stock", cfg.QuoteCacheTTL, log.Logger)
		coins = quotes.NewCachedQuoter(coins, rdb, "crypto", cfg.QuoteCacheTTL, log.Logger)
	}

	// Health
	healthHandlers := &health.Handlers{DB: db, Rdb: rdb, StartedAt: time.Now()}
	app.Get("/health/json", healthHandlers.JSON)

	// Accounts module
	accountHandlers := &accounts.Handlers{Service: &accounts.Service{DB: db}}
	accountGroup := app.Group("/api/v1/accounts")
	accountGroup.Get("/", accountHandlers.List)
	accountGroup.Post("/", accountHandlers.Create)
	accountGroup.Put("/:id", accountHandlers.Update)
	accountGroup.Delete("/:id", accountHandlers.Delete)

	// Cash module
	cashHandlers := &cash.Handlers{Service: &cash.Service{DB: db}}
	cashGroup := app.Group("/api/v1/cash")
	cashGroup.Get("/", cashHandlers.List)
	cashGroup.Post("/", cashHandlers.Create)
	cashGroup.Put("/:id", cashHandlers.Update)
	cashGroup.Delete("/:id", cashHandlers.Delete)

	// Investments module
	investmentHandlers := &investments.Handlers{Service: &investments.Service{DB: db, Quoter: stocks}}
	investmentGroup := app.Group("/api/v1/investments")
	investmentGroup.Get("/", investmentHandlers.List)
	investmentGroup.Post("/", investmentHandlers.Create)
	investmentGroup.Put("/:id", investmentHandlers.Update)
	investmentGroup.Delete("/:id", investmentHandlers.Delete)

	// Crypto module
	cryptoHandlers := &crypto.Handlers{Service: &crypto.Service{DB: db, Quoter: coins}}
	cryptoGroup := app.Group("/api/v1/crypto")
	cryptoGroup.Get("/", cryptoHandlers.List)
	cryptoGroup.Post("/", cryptoHandlers.Create)
	cryptoGroup.Put("/:id", cryptoHandlers.Update)
	cryptoGroup.Delete("/:id", cryptoHandlers.Delete)

	// Transactions module (ledger)
	txHandlers := &transactions.Handlers{Service: &transactions.Service{DB: db}}
	txGroup := app.Group("/api/v1/transactions")
	txGroup.Get("/", txHandlers.List)
	txGroup.Post("/", txHandlers.Create)
	txGroup.Get("/:assetType/:assetId", txHandlers.ListForAsset)

	// Portfolio module (valuation + aggregation + history)
	portfolioService := &portfolio.Service{DB: db, Stocks: stocks, Crypto: coins}
	portfolioHandlers := &portfolio.Handlers{Service: portfolioService}
	portfolioGroup := app.Group("/api/v1/portfolio")
	portfolioGroup.Get("/", portfolioHandlers.GetPortfolio)
	portfolioGroup.Get("/history", portfolioHandlers.GetHistory)
	portfolioGroup.Post("/update-prices", portfolioHandlers.UpdatePrices)

	// Asset lookups (search + spot prices)
	assetHandlers := &assets.Handlers{Stocks: stocks, Crypto: coins}
	assetGroup := app.Group("/api/v1/assets")
	assetGroup.Get("/search", assetHandlers.Search)
	assetGroup.Get("/price", assetHandlers.Price)
	assetGroup.Get("/price-by-name", assetHandlers.PriceByName)

	return app, db, rdb, portfolioService, nil
}
