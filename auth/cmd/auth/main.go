package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community-server/auth/internal/bootstrap"
	"community-server/auth/internal/config"
	"community-server/auth/internal/handler"
	"community-server/auth/internal/service"
	"community-server/shared/database"
	"community-server/shared/interfaces"
	sharedLogger "community-server/shared/logger"
	"community-server/shared/mail"
	"community-server/shared/messaging"
	sharedMiddleware "community-server/shared/middleware"
	"community-server/shared/models"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig("../../.env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	logger, err := sharedLogger.New(sharedLogger.Config{
		Level:    cfg.LogLevel,
		Encoding: sharedLogger.EncodingForEnv(cfg.Env),
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	zap.L().Info("Logger initialized successfully", zap.String("logLevel", cfg.LogLevel), zap.String("env", cfg.Env))

	// --- External Connections ---
	pgPool, err := setupPostgres(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgPool.Close()

	if err := database.ApplyMigrations(cfg.DatabaseURL(), logger); err != nil {
		zap.L().Fatal("Failed to apply database migrations", zap.Error(err))
	}

	redisClient, err := setupRedis(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	notifier, closeNotifier, err := setupNotifier(cfg, logger)
	if err != nil {
		zap.L().Fatal("Failed to set up mail notifier", zap.Error(err))
	}
	defer closeNotifier()

	// --- Dependency Injection ---
	userRepo := database.NewPgUserRepository(pgPool, logger)
	roleRepo := database.NewPgRoleRepository(pgPool, logger)
	settingsRepo := database.NewPgSiteSettingsRepository(pgPool, logger)
	tokenRepo := database.NewRedisVerificationTokenRepository(redisClient, logger)

	hasher := service.NewBcryptHasher(cfg.PasswordHashCost, cfg.PasswordPepper)
	sessions, err := service.NewJWTIssuer(cfg.JWTSecret, cfg.SessionTTL, cfg.ServiceID)
	if err != nil {
		zap.L().Fatal("Failed to create session issuer", zap.Error(err))
	}
	verifier := service.NewEmailVerifier(tokenRepo, userRepo, notifier, cfg.EmailVerifyTTL(), cfg.RedirectURL, logger)
	authSvc := service.NewAuthService(userRepo, roleRepo, verifier, hasher, sessions, logger)
	systemSvc := service.NewSystemService(userRepo, roleRepo, settingsRepo, hasher, logger)

	// --- Bootstrap ---
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = bootstrap.Initialize(bootCtx, bootstrap.Deps{
		Users:  userRepo,
		Roles:  roleRepo,
		Hasher: hasher,
		Logger: logger,
	}, bootstrap.SystemAdmin{
		Email:    cfg.SysadminEmail,
		Name:     cfg.SysadminName,
		Password: cfg.SysadminPassword,
	})
	bootCancel()
	if err != nil {
		zap.L().Fatal("Bootstrap failed", zap.Error(err))
	}

	// --- Rate Limiter (Redis store, per client IP) ---
	rateLimitStore := rateli.RedisStore(&rateli.RedisOptions{
		RedisClient: redisClient,
		Rate:        time.Minute,
		Limit:       cfg.RateLimitPerMinute,
	})
	rateLimitMiddleware := rateli.RateLimiter(rateLimitStore, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			zap.L().Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Code:    models.ErrCodeTooManyRequests,
				Message: "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
			})
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})

	authHandler := handler.NewAuthHandler(authSvc, systemSvc, logger)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(sharedMiddleware.GinZapLogger(logger))
	router.Use(gin.Recovery())

	p := ginprometheus.NewPrometheus("gin")

	corsConfig := cors.DefaultConfig()
	allowedOrigins := cfg.GetAllowedOrigins()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
		zap.L().Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", sharedMiddleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	healthHandler := func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := pgPool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	authHandler.RegisterRoutes(router, rateLimitMiddleware)

	// Prometheus после регистрации роутов
	p.Use(router)

	// --- Start HTTP Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

// setupNotifier picks the mail transport. The returned close func is never nil.
func setupNotifier(cfg *config.Config, logger *zap.Logger) (interfaces.Notifier, func(), error) {
	switch cfg.NotifierDriver {
	case config.NotifierAMQP:
		conn, err := connectRabbitMQ(cfg.RabbitMQURL, logger)
		if err != nil {
			return nil, nil, err
		}
		publisher, err := messaging.NewRabbitMQMailPublisher(conn, cfg.MailQueueName, logger)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("Failed to close mail publisher", zap.Error(err))
			}
			conn.Close()
		}, nil
	case config.NotifierSMTP:
		sender := mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, logger)
		return sender, func() {}, nil
	default:
		logger.Warn("Mail is only logged, set NOTIFIER_DRIVER to amqp or smtp for delivery")
		return mail.NewLogSender(logger), func() {}, nil
	}
}

// setupPostgres initializes the PostgreSQL connection pool with retry logic.
func setupPostgres(cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres config: %w", err)
	}
	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MaxConnIdleTime = cfg.DBIdleTimeout

	var lastErr error
	maxRetries := 50
	retryDelay := 3 * time.Second

	zap.L().Info("Attempting to connect to PostgreSQL", zap.Int("max_retries", maxRetries), zap.Duration("retry_delay", retryDelay))

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		connectCtx, connectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
		connectCancel()

		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
			err = pool.Ping(pingCtx)
			pingCancel()
			if err == nil {
				zap.L().Info("Successfully connected and pinged PostgreSQL", zap.Int("attempt", attempt))
				return pool, nil
			}
			pool.Close()
		}

		lastErr = fmt.Errorf("postgres unavailable (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Postgres connection failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", maxRetries, lastErr)
}

// setupRedis initializes the Redis client with retry logic.
func setupRedis(cfg *config.Config) (*redis.Client, error) {
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	zap.L().Info("Redis connection options configured", zap.String("address", redisOpts.Addr), zap.Int("db", redisOpts.DB))

	var lastErr error
	maxRetries := 50
	retryDelay := 3 * time.Second

	for i := 0; i < maxRetries; i++ {
		attempt := i + 1
		client := redis.NewClient(redisOpts)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := client.Ping(pingCtx).Result()
		pingCancel()

		if err == nil {
			zap.L().Info("Successfully connected and pinged Redis", zap.Int("attempt", attempt))
			return client, nil
		}

		client.Close()
		lastErr = fmt.Errorf("unable to ping redis (attempt %d/%d): %w", attempt, maxRetries, err)
		zap.L().Warn("Redis ping failed, retrying...",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to redis after %d attempts: %w", maxRetries, lastErr)
}

// connectRabbitMQ пытается подключиться к RabbitMQ с несколькими попытками.
func connectRabbitMQ(rawURL string, logger *zap.Logger) (*amqp091.Connection, error) {
	var err error
	maxRetries := 50
	retryDelay := 5 * time.Second
	logger.Info("Attempting to connect to RabbitMQ",
		zap.String("url", maskURL(rawURL)),
		zap.Int("max_retries", maxRetries),
		zap.Duration("retry_delay", retryDelay),
	)
	for i := 0; i < maxRetries; i++ {
		var conn *amqp091.Connection
		conn, err = amqp091.Dial(rawURL)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ", zap.Int("attempt", i+1))
			go func() {
				notifyClose := conn.NotifyClose(make(chan *amqp091.Error, 1))
				if closeErr := <-notifyClose; closeErr != nil {
					logger.Error("RabbitMQ connection closed unexpectedly", zap.Error(closeErr))
				}
			}()
			return conn, nil
		}
		logger.Warn("RabbitMQ connection failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

// maskURL hides the password part of a connection URL for logging.
func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}
	return u.Redacted()
}
