package main

import (
	"context"
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

	_ "github.com/sbilibin2017/gw-notebook/docs"
	"github.com/sbilibin2017/gw-notebook/internal/handlers"
	"github.com/sbilibin2017/gw-notebook/internal/jwt"
	"github.com/sbilibin2017/gw-notebook/internal/logger"
	"github.com/sbilibin2017/gw-notebook/internal/middlewares"
	"github.com/sbilibin2017/gw-notebook/internal/passwords"
	"github.com/sbilibin2017/gw-notebook/internal/repositories"
	"github.com/sbilibin2017/gw-notebook/internal/services"
	"github.com/sbilibin2017/gw-notebook/internal/validators"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-notebook API
// @version 1.0.0
// @description Notebook service with accounts, sessions and per-user notes
// @host localhost:8080
// @BasePath /
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
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

type config struct {
	appHost, appPort, logLevel string

	pgHost                         string
	pgPort                         int
	pgUser, pgPassword, pgDB       string
	pgMaxOpenConns, pgMaxIdleConns int

	redisHost                        string
	redisPort, redisDB               int
	redisPassword                    string
	redisPoolSize, redisMinIdleConns int

	kafkaBrokers []string
	kafkaTopic   string

	jwtSecretKey        string
	sessionTTL          time.Duration
	sessionCookieName   string
	sessionCookieSecure bool

	rateLimitSignup int64
	rateLimitLogin  int64
	rateLimitWindow time.Duration

	passwordMinLength int
	bcryptCost        int
}

// parseConfig loads environment variables from a file and returns
// application, database, Redis, Kafka, session and policy configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		n, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.pgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "database")
	if cfg.pgPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.pgMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.pgMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.redisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.redisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.redisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Kafka config, empty brokers disable event publishing
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.kafkaBrokers = append(cfg.kafkaBrokers, b)
			}
		}
	}
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "account-events")

	// JWT and session config
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	ttl, err := getInt("SESSION_TTL_SECOND", "86400")
	if err != nil {
		return
	}
	cfg.sessionTTL = time.Duration(ttl) * time.Second
	cfg.sessionCookieName = getEnv("SESSION_COOKIE_NAME", jwt.DefaultCookieName)
	if cfg.sessionCookieSecure, err = strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", "false")); err != nil {
		err = fmt.Errorf("SESSION_COOKIE_SECURE: %w", err)
		return
	}

	// Rate limit config
	signup, err := getInt("RATE_LIMIT_SIGNUP", "5")
	if err != nil {
		return
	}
	login, err := getInt("RATE_LIMIT_LOGIN", "10")
	if err != nil {
		return
	}
	window, err := getInt("RATE_LIMIT_WINDOW_SECOND", "900")
	if err != nil {
		return
	}
	cfg.rateLimitSignup = int64(signup)
	cfg.rateLimitLogin = int64(login)
	cfg.rateLimitWindow = time.Duration(window) * time.Second

	// Password policy
	if cfg.passwordMinLength, err = getInt("PASSWORD_MIN_LENGTH", "6"); err != nil {
		return
	}
	if cfg.bcryptCost, err = getInt("BCRYPT_COST", "12"); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka writer, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	log := logger.Log
	log.Infof("Logger initialized with level %s", cfg.logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
	log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.pgHost, cfg.pgPort, cfg.pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.pgMaxOpenConns)
	db.SetMaxIdleConns(cfg.pgMaxIdleConns)

	if err := repositories.RunMigrations(ctx, db.DB); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
		Password:     cfg.redisPassword,
		DB:           cfg.redisDB,
		PoolSize:     cfg.redisPoolSize,
		MinIdleConns: cfg.redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer for account events
	var writer services.KafkaWriter
	if len(cfg.kafkaBrokers) > 0 {
		kw := newKafkaWriter(cfg)
		defer kw.Close()
		writer = kw
		log.Infof("Publishing account events to Kafka topic %s", cfg.kafkaTopic)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler: newRouter(cfg, db, rdb, writer),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}

// newRouter wires repositories, services and handlers into the HTTP router.
// newKafkaWriter builds an asynchronous writer. Delivery failures are logged.
func newKafkaWriter(cfg config) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.kafkaBrokers...),
		Topic:                  cfg.kafkaTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		BatchTimeout:           10 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Log.Errorw("Failed to deliver account events", "count", len(messages), "error", err)
			}
		},
	}
}

func newRouter(cfg config, db *sqlx.DB, rdb *redis.Client, writer services.KafkaWriter) http.Handler {
	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.jwtSecretKey),
		jwt.WithExpiration(cfg.sessionTTL),
		jwt.WithCookieName(cfg.sessionCookieName),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db, middlewares.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	noteRepo := repositories.NewNoteRepository(db)
	sessionRepo := repositories.NewSessionRepository(rdb)
	rateLimitRepo := repositories.NewRateLimitRepository(rdb)

	// Initialize services
	policy := validators.DefaultPasswordPolicy()
	policy.MinLength = cfg.passwordMinLength
	validator := validators.New(policy)
	hasher := passwords.NewHasher(cfg.bcryptCost)
	events := services.NewEventPublisher(writer)

	authService := services.NewAuthService(
		userReadRepo, userWriteRepo, hasher, validator,
		services.NewUniquenessResolver(userReadRepo, nil), events,
	)
	sessionService := services.NewSessionService(tokens, sessionRepo, userReadRepo)
	profileService := services.NewProfileService(userReadRepo, userWriteRepo, hasher, validator, events, middlewares.AfterCommit)
	noteService := services.NewNoteService(noteRepo, validator, events)

	cookie := handlers.SessionCookie{Name: tokens.CookieName(), Secure: cfg.sessionCookieSecure}

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Public routes
	r.Route("/auth", func(r chi.Router) {
		r.With(middlewares.RateLimitMiddleware(rateLimitRepo, "signup", cfg.rateLimitSignup, cfg.rateLimitWindow)).
			Post("/signup", handlers.NewRegisterHandler(authService))
		r.With(middlewares.RateLimitMiddleware(rateLimitRepo, "login", cfg.rateLimitLogin, cfg.rateLimitWindow)).
			Post("/login", handlers.NewLoginHandler(authService, sessionService, cookie))
		r.Post("/logout", handlers.NewLogoutHandler(tokens, sessionService, cookie))
		r.Get("/session", handlers.NewSessionHandler(tokens, sessionService))
		r.Get("/health", handlers.NewAuthHealthHandler(tokens, sessionService))
	})
	r.Get("/health", handlers.NewHealthHandler(db))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(tokens, sessionService))

		r.With(middlewares.TxMiddleware(db)).
			Put("/profile/{userId}", handlers.NewProfileHandler(profileService))

		r.Get("/notes", handlers.NewListNotesHandler(noteService))
		r.Post("/notes", handlers.NewSaveNoteHandler(noteService))
		r.Get("/notes/{id}", handlers.NewGetNoteHandler(noteService))
		r.Put("/notes/{id}", handlers.NewUpdateNoteHandler(noteService))
		r.Delete("/notes/{id}", handlers.NewDeleteNoteHandler(noteService))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort)),
	))

	return r
}
