// main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-shop/checkout"
	"go-shop/config"
	"go-shop/controllers"
	"go-shop/metrics"
	"go-shop/middleware"
	"go-shop/notify"
	"go-shop/routes"
	"go-shop/store"
	"go-shop/store/memstore"
	"go-shop/store/mongostore"
	"go-shop/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		log.Println("Using in-memory storage; data is lost on restart")
		return memstore.New().Store(), nil
	}
	return mongostore.Connect(ctx, mongostore.Options{
		URI:          cfg.MongoURI,
		Database:     cfg.MongoDatabase,
		Transactions: cfg.MongoTransactions,
	})
}

func newMailer(cfg *config.Config) utils.Mailer {
	switch cfg.EmailProvider {
	case config.EmailPostmark:
		return utils.NewPostmarkMailer(cfg.PostmarkAPIToken, cfg.EmailSender)
	case config.EmailSendgrid:
		return utils.NewSendgridMailer(cfg.SendgridAPIKey, cfg.EmailSender)
	default:
		return utils.LogMailer{}
	}
}

type queue interface {
	notify.Dispatcher
	notify.Source
	Close() error
}

// startNotifications returns the dispatcher checkout submits to. For broker
// backends it also starts the consuming worker, stopped by cancelling ctx.
func startNotifications(ctx context.Context, cfg *config.Config, worker *notify.Worker) (notify.Dispatcher, func()) {
	var q queue
	switch cfg.NotifyBackend {
	case config.NotifyRedis:
		q = notify.NewRedisQueue(redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), cfg.RedisQueue)
	case config.NotifyKafka:
		q = notify.NewKafkaQueue(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID)
	default:
		return &notify.InlineDispatcher{Worker: worker}, func() {}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := worker.Run(ctx, q); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Notification worker stopped: %v", err)
		}
	}()
	log.Printf("Notification worker consuming from %s", cfg.NotifyBackend)

	return q, func() {
		<-done
		if err := q.Close(); err != nil {
			log.Printf("Closing notification queue: %v", err)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWTSecret)
	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET not set; using an insecure development key")
		utils.JwtKey = []byte("dev-only-secret")
	}
	utils.TokenTTL = cfg.TokenTTL

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	s, err := openStore(connectCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Storage unavailable: %v", err)
	}

	worker := &notify.Worker{
		Orders:     s.Orders,
		Users:      s.Users,
		Mailer:     newMailer(cfg),
		InvoiceDir: cfg.InvoiceDir,
	}
	workerCtx, stopWorker := context.WithCancel(context.Background())
	dispatcher, waitWorker := startNotifications(workerCtx, cfg, worker)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serverMetrics := metrics.NewServerMetrics(reg)

	// Initialize controllers
	engine := checkout.New(s, dispatcher)
	ctrls := routes.Controllers{
		Users:      controllers.NewUserController(s.Users),
		Products:   controllers.NewProductController(s.Catalog),
		Categories: controllers.NewCategoryController(s.Catalog),
		Carts:      controllers.NewCartController(s.Carts, s.Catalog),
		Orders:     controllers.NewOrderController(s, engine, serverMetrics),
	}

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.Metrics(serverMetrics))
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.Ping(pingCtx); err != nil {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler(reg)).Methods(http.MethodGet)
	routes.RegisterRoutes(router, ctrls, middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// CORS → security headers → request logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
	}).Handler(middleware.SecurityHeaders(middleware.RequestLogger(router)))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           corsHandler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Server is running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received; shutting down gracefully...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	stopWorker()
	waitWorker()

	if err := s.Close(shutdownCtx); err != nil {
		log.Printf("Closing storage: %v", err)
	}
	log.Println("Server stopped cleanly")
}
