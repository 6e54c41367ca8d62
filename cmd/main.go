package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/gw-chat/docs"
	"github.com/sbilibin2017/gw-chat/internal/facades"
	"github.com/sbilibin2017/gw-chat/internal/handlers"
	"github.com/sbilibin2017/gw-chat/internal/jwt"
	"github.com/sbilibin2017/gw-chat/internal/logger"
	"github.com/sbilibin2017/gw-chat/internal/middlewares"
	"github.com/sbilibin2017/gw-chat/internal/migrations"
	"github.com/sbilibin2017/gw-chat/internal/relay"
	"github.com/sbilibin2017/gw-chat/internal/repositories"
	"github.com/sbilibin2017/gw-chat/internal/services"
	"github.com/sbilibin2017/gw-chat/internal/websocket"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds every setting read from the environment.
type config struct {
	AppHost   string
	AppPort   string
	LogLevel  string
	LogFormat string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisExpSecond    int
	RedisPubSub       bool

	KafkaBrokers []string

	JWTSecretKey string
	JWTExpSecond int

	UploadDir string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Prefix    string

	RelayBatchSize      int
	RelayRetrySecond    int
	RelayPublishTimeout int

	CORSAllowedOrigins []string
}

// pgDSN returns the Postgres connection URL.
func (c config) pgDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// @title gw-chat API
// @version 1.0.0
// @description Chat backend: users, messages and live message notifications
// @host localhost:9000
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application configuration. Variables already set in the environment win.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getList := func(key, defaultValue string) []string {
		var out []string
		for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "9000")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("APP_LOG_FORMAT", "json")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.RedisExpSecond, err = getInt("REDIS_EXP_SECOND", "3600"); err != nil {
		return
	}
	if cfg.RedisPubSub, err = strconv.ParseBool(getEnv("REDIS_PUBSUB_ENABLED", "true")); err != nil {
		err = fmt.Errorf("REDIS_PUBSUB_ENABLED: %w", err)
		return
	}

	// Kafka config, no brokers disables the Kafka push channel
	cfg.KafkaBrokers = getList("KAFKA_BROKERS", "")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "86400"); err != nil {
		return
	}

	// Profile image storage, a bucket selects S3 over the local directory
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")
	cfg.S3Bucket = getEnv("S3_BUCKET", "")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", "")
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", "")
	cfg.S3Prefix = getEnv("S3_PREFIX", "uploads")

	// Change relay config
	if cfg.RelayBatchSize, err = getInt("RELAY_BATCH_SIZE", "100"); err != nil {
		return
	}
	if cfg.RelayRetrySecond, err = getInt("RELAY_RETRY_SECOND", "5"); err != nil {
		return
	}
	if cfg.RelayPublishTimeout, err = getInt("RELAY_PUBLISH_TIMEOUT_SECOND", "5"); err != nil {
		return
	}

	// CORS config
	cfg.CORSAllowedOrigins = getList("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	return
}

// run initializes the logger, database, Redis, push channels, the change
// relay and the HTTP server, and blocks until shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Connect to PostgreSQL
	dsn := cfg.pgDSN()
	logger.Log.Infow("connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := migrations.Up(ctx, db.DB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection error: %w", err)
	}
	defer rdb.Close()

	images, err := newImageStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to configure image storage: %w", err)
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	txManager := repositories.NewTxManager(db)
	userReadRepo := repositories.NewUserReadRepository(db, repositories.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, repositories.GetTxFromContext)
	userCacheRepo := repositories.NewUserCacheRepository(rdb, time.Duration(cfg.RedisExpSecond)*time.Second)
	messageReadRepo := repositories.NewMessageReadRepository(db)
	messageWriteRepo := repositories.NewMessageWriteRepository(db)
	messageEventRepo := repositories.NewMessageEventRepository(db)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, images, txManager, tokens)
	messageService := services.NewMessageService(messageReadRepo, messageWriteRepo)
	userService := services.NewUserService(userReadRepo, userCacheRepo)

	// Push channels
	hub := websocket.NewHub()
	publishers := []facades.Publisher{hub}
	if cfg.RedisPubSub {
		publishers = append(publishers, facades.NewRedisPushFacade(rdb))
	}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaFacade := facades.NewKafkaPushFacade(&kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		})
		defer kafkaFacade.Close()
		publishers = append(publishers, kafkaFacade)
	}

	listener := relay.NewPgListener(dsn, migrations.NotifyChannel)
	defer listener.Close(context.Background())
	changeRelay := relay.New(messageEventRepo, listener, facades.NewMultiPushFacade(publishers...),
		relay.WithBatchSize(cfg.RelayBatchSize),
		relay.WithRetryDelay(time.Duration(cfg.RelayRetrySecond)*time.Second),
		relay.WithPublishTimeout(time.Duration(cfg.RelayPublishTimeout)*time.Second),
	)

	var wg sync.WaitGroup
	bgCtx, stopBackground := context.WithCancel(ctx)
	defer func() {
		stopBackground()
		wg.Wait()
	}()

	wg.Add(2)
	go func() {
		defer wg.Done()
		hub.Run(bgCtx)
	}()
	go func() {
		defer wg.Done()
		if err := changeRelay.Run(bgCtx); err != nil {
			logger.Log.Errorw("change relay stopped", "error", err)
		}
	}()

	r := newRouter(routerDeps{
		tokens:         tokens,
		authService:    authService,
		messageService: messageService,
		userService:    userService,
		hub:            hub,
		allowedOrigins: cfg.CORSAllowedOrigins,
		swaggerURL:     fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newImageStore returns an S3 store when a bucket is configured and a local
// directory store otherwise.
func newImageStore(ctx context.Context, cfg config) (services.ImageStore, error) {
	if cfg.S3Bucket == "" {
		return repositories.NewImageFileRepository(cfg.UploadDir), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return repositories.NewImageS3Repository(client, cfg.S3Bucket, cfg.S3Prefix), nil
}

type routerDeps struct {
	tokens         *jwt.JWT
	authService    *services.AuthService
	messageService *services.MessageService
	userService    *services.UserService
	hub            *websocket.Hub
	allowedOrigins []string
	swaggerURL     string
}

// newRouter wires the HTTP surface.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", handlers.NewRootHandler())

	r.Get("/messages/{userId}", handlers.NewListMessagesHandler(d.messageService))
	r.Get("/messages/{sender}/{receiver}", handlers.NewConversationHandler(d.messageService))
	r.Post("/messages/new", handlers.NewCreateMessageHandler(d.messageService))

	r.Get("/userprofile/{userId}", handlers.NewUserProfileHandler(d.userService))
	r.Get("/users/{uid}", handlers.NewListUsersHandler(d.userService))

	r.Post("/signup/new", handlers.NewSignupHandler(d.authService))
	r.Post("/login", handlers.NewLoginHandler(d.authService))
	r.Get("/logout", handlers.NewLogoutHandler())
	r.Get("/loggedIn", handlers.NewLoggedInHandler(d.tokens))
	r.Get("/getToken", handlers.NewGetTokenHandler(d.tokens))

	r.With(middlewares.AuthMiddleware(d.tokens)).
		Get("/ws", handlers.NewWebSocketHandler(d.hub, originChecker(d.allowedOrigins)))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(d.swaggerURL)))

	return r
}

// originChecker accepts websocket handshakes from the CORS allow list.
// Requests without an Origin header come from non-browser clients and pass.
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}
