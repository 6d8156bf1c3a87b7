package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/evorisgroup/chatbot-backend/internal/core/composer"
	"github.com/evorisgroup/chatbot-backend/internal/core/intent"
	"github.com/evorisgroup/chatbot-backend/internal/core/llm"
	"github.com/evorisgroup/chatbot-backend/internal/core/tenant"
	"github.com/evorisgroup/chatbot-backend/internal/modules/chat/handlers"
	"github.com/evorisgroup/chatbot-backend/internal/modules/chat/models"
	"github.com/evorisgroup/chatbot-backend/internal/modules/chat/repositories"
	"github.com/evorisgroup/chatbot-backend/internal/modules/chat/services"
	"github.com/evorisgroup/chatbot-backend/internal/shared/config"
	"github.com/evorisgroup/chatbot-backend/internal/shared/database"
	"github.com/evorisgroup/chatbot-backend/internal/shared/metrics"
	"github.com/evorisgroup/chatbot-backend/internal/shared/utils"

	_ "github.com/evorisgroup/chatbot-backend/cmd/chat-api/docs"
)

const shutdownTimeout = 10 * time.Second

// @title Support Chat API
// @version 1.0
// @description Multi-tenant support chat backend for the embeddable widget
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Invalid configuration")
	}
	utils.InitLogger(cfg.Env)
	utils.LogInfo("🚀 Starting chat-api", map[string]interface{}{"port": cfg.Port, "env": cfg.Env})

	// Init database
	db, err := database.NewDB(cfg.DatabaseURL, !cfg.IsProduction())
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to connect to database")
	}
	defer db.Close()

	// Tenant store with cache in front
	clientRepo := repositories.NewClientRepo(db.GORM)
	cache, janitor := newTenantCache(cfg)
	if janitor != nil {
		janitor.Start()
		defer janitor.Stop()
	}
	tenants := tenant.NewCachedStore(clientRepo, cache, metrics.TenantCacheRequestsTotal)

	// Language model delegate. Without a key every delegated intent gets
	// the clarification reply.
	providerCfg := &llm.ProviderConfig{
		Type:        llm.ProviderType(cfg.LLM.Provider),
		OpenAIKey:   cfg.LLM.OpenAIKey,
		GroqKey:     cfg.LLM.GroqKey,
		DeepSeekKey: cfg.LLM.DeepSeekKey,
		ClaudeKey:   cfg.LLM.ClaudeKey,
		GeminiKey:   cfg.LLM.GeminiKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		BaseURL:     cfg.LLM.BaseURL,
	}
	var (
		completer composer.Completer
		health    handlers.ProviderNamer
	)
	if provider, err := llm.NewProvider(providerCfg); err != nil {
		utils.LogWarn("⚠️ Language model disabled", map[string]interface{}{"reason": err.Error()})
	} else {
		llmService := llm.NewService(provider, cfg.LLM.Timeout)
		completer, health = llmService, llmService
		log.Info().Str("provider", llmService.GetProviderName()).Msg("🤖 Using LLM provider")
	}

	// Intent router
	strategy, err := intent.ParseStrategy(cfg.Classifier.Strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Invalid classifier strategy")
	}
	var classifier intent.Classifier
	if strategy != intent.StrategyPattern {
		if client, model, err := llm.NewOpenAIClient(providerCfg, cfg.Classifier.Model); err != nil {
			utils.LogWarn("⚠️ Model classifier disabled, using patterns only", map[string]interface{}{"reason": err.Error()})
		} else {
			classifier = intent.NewLLMClassifier(client, model)
		}
	}
	router := intent.NewRouter(strategy, classifier, cfg.Classifier.Timeout, metrics.ClassifierFailures())
	log.Info().Str("strategy", string(strategy)).Bool("delegate", classifier != nil).Msg("🧭 Intent router ready")

	// Init services
	chatService := services.NewChatService(tenants, router, composer.New(completer, metrics.ModelFailures()), services.Options{
		FetchTimeout:    cfg.Tenant.FetchTimeout,
		DefaultLocation: cfg.DefaultLocation(),
		Replies:         metrics.RepliesTotal,
		Duration:        metrics.ReplyDuration,
	})

	// Init handlers
	chatHandler := handlers.NewChatHandler(chatService)
	clientDataHandler := handlers.NewClientDataHandler(chatService)
	healthHandler := handlers.NewHealthHandler(health, string(strategy))

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Support Chat API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: joinOrigins(cfg.CORSAllowOrigins),
		AllowMethods: "GET,POST,OPTIONS",
	}))
	if cfg.RateLimitPerMinute > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitPerMinute,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics"
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(models.ChatResponse{Reply: composer.UnavailableReply})
			},
		}))
	}

	// Swagger and metrics
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Chat routes
	handlers.Register(app, chatHandler, clientDataHandler, healthHandler)

	// Start server
	go func() {
		log.Info().Msgf("✅ chat-api running at :%s", cfg.Port)
		log.Info().Msgf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			utils.LogError("❌ Server stopped", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down chat-api...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		utils.LogError("❌ Graceful shutdown failed", err, nil)
	}
}

// newTenantCache uses redis when REDIS_URL is set and reachable, else an
// in-process cache swept by a janitor.
func newTenantCache(cfg *config.Config) (tenant.Cache, *tenant.Janitor) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Invalid REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			utils.LogWarn("⚠️ Redis unreachable, falling back to memory cache", map[string]interface{}{"error": err.Error()})
			_ = rdb.Close()
		} else {
			log.Info().Msg("✅ Tenant cache: redis")
			return tenant.NewRedisCache(rdb, cfg.Tenant.CacheTTL), nil
		}
	}

	mem := tenant.NewMemoryCache(cfg.Tenant.CacheTTL, cfg.Tenant.CacheMaxEntries, nil)
	janitor, err := tenant.NewJanitor(mem, tenant.DefaultSweepSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to schedule cache janitor")
	}
	log.Info().Dur("ttl", cfg.Tenant.CacheTTL).Msg("✅ Tenant cache: memory")
	return mem, janitor
}

func joinOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
