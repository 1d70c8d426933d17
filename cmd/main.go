package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tmc/langchaingo/llms/openai"

	"thepass/internal/api"
	"thepass/internal/career"
	"thepass/internal/config"
	"thepass/internal/database"
	"thepass/internal/evaluation"
	"thepass/internal/events"
	"thepass/internal/kitchen"
	"thepass/internal/models"
	"thepass/internal/monitoring"
	"thepass/internal/playground"
	"thepass/internal/shift"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if flagSet("metrics-port") {
		cfg.MetricsConfig.Port = *metricsPort
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store, err := database.NewKVStore(db)
	if err != nil {
		log.Fatalf("Failed to initialize save store: %v", err)
	}
	saves := career.NewManager(store)

	catalog, err := loadCatalog(cfg.RecipesFile)
	if err != nil {
		log.Fatalf("Failed to load recipes: %v", err)
	}

	// Observers
	metricsCollector := evaluation.NewMetricsCollector()
	monitor := monitoring.NewMonitor()
	observers := []shift.Observer{metricsCollector, monitor}

	if cfg.NATS.URL != "" {
		publisher, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			log.Printf("Event relay disabled: %v", err)
		} else {
			defer publisher.Close()
			observers = append(observers, events.NewRelay(publisher, cfg.NATS.SubjectPrefix))
			log.Printf("Relaying service events to %s", cfg.NATS.URL)
		}
	}

	annotator, err := initializeAnnotator(cfg)
	if err != nil {
		log.Printf("LLM commentary disabled: %v", err)
	}

	saved := saves.LoadCareer(ctx)
	opts := shift.Options{
		Catalog:   catalog,
		Random:    kitchen.NewRandom(time.Now().UnixNano()),
		Store:     saves,
		Observers: observers,
		Settings:  saves.LoadSettings(ctx, models.DefaultSettings()),
		Money:     shift.StartingMoney(saved),
	}
	if saved != nil {
		opts.Career = *saved
	}
	if annotator != nil {
		opts.Annotator = annotator
	}
	machine := shift.NewMachine(opts)
	hub := playground.NewHub(machine)

	passAPI := api.NewPassAPI(machine, saves, monitor, api.Options{
		AuthSecret: cfg.Auth.Secret,
		Stream:     hub.HandleWebSocket,
	})

	// Start metrics server
	var metricsServer *http.Server
	if cfg.MetricsConfig.Enabled {
		metricsServer = startMetricsServer(cfg.MetricsConfig.Port, cfg.MetricsConfig.Path, metricsCollector)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: passAPI.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigChan:
		case <-ctx.Done():
			return
		}

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		hub.Close()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
		if metricsServer != nil {
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Metrics server shutdown error: %v", err)
			}
		}
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}

	machine.Close()
	log.Println("Kitchen closed")
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func loadCatalog(path string) (*models.RecipeCatalog, error) {
	if path == "" {
		return models.NewRecipeCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return models.LoadRecipeCatalog(f)
}

func initializeAnnotator(cfg *config.Config) (evaluation.Annotator, error) {
	if !cfg.LLMEnabled() {
		return nil, nil
	}
	llm, err := openai.New(
		openai.WithModel(cfg.LLM.Model),
		openai.WithToken(cfg.LLM.OpenAIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return evaluation.NewLLMAnnotator(llm), nil
}

func startMetricsServer(port int, path string, collector *evaluation.MetricsCollector) *http.Server {
	metricsRouter := gin.New()
	metricsRouter.GET(path, gin.WrapH(collector.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	go func() {
		log.Printf("Starting metrics server on port %d", port)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("Metrics server error: %v", err)
		}
	}()
	return metricsServer
}
