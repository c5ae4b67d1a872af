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
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/sbilibin2017/gw-p2p-payments/docs"
	"github.com/sbilibin2017/gw-p2p-payments/internal/facades"
	"github.com/sbilibin2017/gw-p2p-payments/internal/handlers"
	"github.com/sbilibin2017/gw-p2p-payments/internal/jwt"
	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
	"github.com/sbilibin2017/gw-p2p-payments/internal/middlewares"
	"github.com/sbilibin2017/gw-p2p-payments/internal/migrations"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
	"github.com/sbilibin2017/gw-p2p-payments/internal/repositories"
	"github.com/sbilibin2017/gw-p2p-payments/internal/services"
	"github.com/sbilibin2017/gw-p2p-payments/internal/txmanager"

	_ "github.com/jackc/pgx/v5/stdlib"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config is the whole runtime configuration of the service.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int
	PGTxRetries    int
	PGLockTimeout  time.Duration

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RatesTTL          time.Duration
	HintTTL           time.Duration

	// Empty host disables the remote rate source.
	GWHost string
	GWPort string

	// Empty brokers disable event publishing.
	KafkaBrokers []string
	KafkaTopic   string

	JWTSecretKey string
	JWTExp       time.Duration

	InitialBalance         decimal.Decimal
	InitialBalanceCurrency models.Currency

	// Staff user is seeded when all three are set.
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// @title gw-p2p-payments API
// @version 1.0.0
// @description Peer-to-peer payments between single-currency accounts
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, gRPC, Kafka, logging, and JWT configuration.
func parseConfig(path string) (*config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var err error
	getInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		var n int
		if n, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return n
	}

	cfg := &config{}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	cfg.PGPort = getInt("POSTGRES_PORT", "5432")
	cfg.PGMaxOpenConns = getInt("POSTGRES_MAX_OPEN_CONNS", "16")
	cfg.PGMaxIdleConns = getInt("POSTGRES_MAX_IDLE_CONNS", "8")
	cfg.PGTxRetries = getInt("POSTGRES_TX_RETRIES", "3")
	cfg.PGLockTimeout = time.Duration(getInt("POSTGRES_LOCK_TIMEOUT_MS", "5000")) * time.Millisecond

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getInt("REDIS_PORT", "6379")
	cfg.RedisDB = getInt("REDIS_DB", "0")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisPoolSize = getInt("REDIS_POOL_SIZE", "10")
	cfg.RedisMinIdleConns = getInt("REDIS_MIN_IDLE_CONNS", "2")
	cfg.RatesTTL = time.Duration(getInt("REDIS_RATES_TTL_SECOND", "3600")) * time.Second
	cfg.HintTTL = time.Duration(getInt("REDIS_HINT_TTL_SECOND", "600")) * time.Second

	// gRPC config
	cfg.GWHost = getEnv("GW_EXCHANGER_HOST", "")
	cfg.GWPort = getEnv("GW_EXCHANGER_PORT", "50051")

	// Kafka config
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "p2p-transactions")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	cfg.JWTExp = time.Duration(getInt("JWT_EXP_SECOND", "3600")) * time.Second

	if err != nil {
		return nil, err
	}

	// Registration grant
	if cfg.InitialBalance, err = decimal.NewFromString(getEnv("INITIAL_BALANCE", "1000.00")); err != nil {
		return nil, fmt.Errorf("INITIAL_BALANCE: %w", err)
	}
	if cfg.InitialBalance.IsNegative() {
		return nil, errors.New("INITIAL_BALANCE: must not be negative")
	}
	if cfg.InitialBalanceCurrency, err = models.ParseCurrency(getEnv("INITIAL_BALANCE_CURRENCY", "GBP")); err != nil {
		return nil, fmt.Errorf("INITIAL_BALANCE_CURRENCY: %w", err)
	}

	// Staff seed
	cfg.AdminUsername = getEnv("ADMIN_USERNAME", "")
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", "")
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "")

	return cfg, nil
}

// paymentAPI is everything the customer routes call.
type paymentAPI interface {
	handlers.AccountGetter
	handlers.PaymentSender
	handlers.PaymentRequester
	handlers.RequestsLister
	handlers.RequestAccepter
	handlers.RequestDeleter
	handlers.HistoryLister
}

// authAPI is everything the public routes call.
type authAPI interface {
	handlers.Registerer
	handlers.Loginer
}

// adminAPI is everything the staff routes call.
type adminAPI interface {
	handlers.UsersLister
	handlers.TransactionsLister
}

// newRouter mounts every route under /api/v1 plus the Swagger UI.
func newRouter(
	tokener middlewares.Tokener,
	auth authAPI,
	payments paymentAPI,
	admin adminAPI,
	swaggerURL string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/register", handlers.NewRegisterHandler(auth))
		r.Post("/login", handlers.NewLoginHandler(auth))

		// Customer routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokener))
			r.Use(middlewares.RoleMiddleware(false))

			r.Get("/account", handlers.NewGetAccountHandler(payments))
			r.Post("/payments/send", handlers.NewSendPaymentHandler(payments))
			r.Post("/payments/request", handlers.NewRequestPaymentHandler(payments))
			r.Get("/requests", handlers.NewListRequestsHandler(payments))
			r.Post("/requests/{id}/accept", handlers.NewAcceptRequestHandler(payments))
			r.Delete("/requests/{id}", handlers.NewDeleteRequestHandler(payments))
			r.Get("/history", handlers.NewHistoryHandler(payments))
		})

		// Staff routes
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokener))
			r.Use(middlewares.RoleMiddleware(true))

			r.Get("/admin/users", handlers.NewListUsersHandler(admin))
			r.Get("/admin/transactions", handlers.NewListTransactionsHandler(admin))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))

	return r
}

// run initializes the logger, database, Redis, gRPC client, Kafka writer and
// HTTP server. It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg *config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := migrations.Up(db.DB); err != nil {
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
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Connect to the exchanger over gRPC
	var rateReader services.ReferenceRateReader
	if cfg.GWHost != "" {
		grpcAddr := fmt.Sprintf("%s:%s", cfg.GWHost, cfg.GWPort)
		conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("failed to connect to gRPC service at %s: %w", grpcAddr, err)
		}
		defer conn.Close()
		rateReader = facades.NewExchangeRatesGRPCFacade(pb.NewExchangeServiceClient(conn))
	}

	// Load the rate table used for the lifetime of the process
	rateCache := repositories.NewExchangeRateCacheRepository(rdb, cfg.RatesTTL)
	rates, err := services.NewRateLoader(rateCache, rateReader).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load exchange rates: %w", err)
	}

	// Kafka writer
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Publishing transaction events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.JWTExp))

	// Initialize repositories
	tm := txmanager.New(db, txmanager.WithMaxRetries(cfg.PGTxRetries), txmanager.WithLockTimeout(cfg.PGLockTimeout))
	userReadRepo := repositories.NewUserReadRepository(db, txmanager.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, txmanager.GetTxFromContext)
	accountRepo := repositories.NewAccountRepository(db, txmanager.GetTxFromContext)
	transactionRepo := repositories.NewTransactionRepository(db, txmanager.GetTxFromContext)
	hintRepo := repositories.NewHintRepository(rdb, cfg.HintTTL)

	// Initialize services
	authService := services.NewAuthService(tm, userReadRepo, userWriteRepo, accountRepo, rates, tokens,
		services.InitialGrant{Amount: cfg.InitialBalance, Currency: cfg.InitialBalanceCurrency})
	paymentService := services.NewPaymentService(tm, accountRepo, transactionRepo, rates, hintRepo, kafkaWriter)
	adminService := services.NewAdminService(userReadRepo, transactionRepo)

	if cfg.AdminUsername != "" && cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authService.EnsureStaff(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
			return fmt.Errorf("failed to seed staff user: %w", err)
		}
	}

	// Setup router
	r := newRouter(tokens, authService, paymentService, adminService,
		fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: otelhttp.NewHandler(r, "gw-p2p-payments"),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
