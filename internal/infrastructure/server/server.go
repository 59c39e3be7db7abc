package server

import (
	"context"
	"database/sql"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/abubakar-xyz/ChopWise-Improved/internal/cache"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/compose"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/config"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/database"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/database/bunstore"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/database/sqlite"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/dataset"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/domain/repository"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/engine"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/extract"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/forecast"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/intent"
	httpserver "github.com/abubakar-xyz/ChopWise-Improved/internal/interface/http"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/lexicon"
	"github.com/abubakar-xyz/ChopWise-Improved/internal/resolve"
)

type Server struct {
	cfg        *config.Config
	httpServer *http.Server
}

func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	ctx := context.Background()

	// ==========================================
	// Load dataset into the store
	// ==========================================

	records, err := dataset.LoadFile(s.cfg.DatasetPath)
	if err != nil {
		return err
	}

	store, err := s.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			log.Printf("[Warning] Failed to close database: %v", closeErr)
		}
	}()

	if err := store.ReplaceAll(ctx, records); err != nil {
		return err
	}

	// Read back through the store so both drivers serve the same view.
	table, err := store.ListAll(ctx)
	if err != nil {
		return err
	}
	log.Printf("[System] 🍚 Price table ready with %d records", len(table))

	// ==========================================
	// Initialize Dependencies (Dependency Injection)
	// ==========================================

	lex := lexicon.Build(table)
	log.Printf("[System] Lexicon built (%d foods, %d states, %d LGAs, %d outlets)",
		len(lex.Foods), len(lex.States), len(lex.LGAs), len(lex.Outlets))

	var forecastCache repository.ForecastCache
	switch s.cfg.CacheBackend {
	case "redis":
		redisCache := cache.NewRedis(s.cfg.RedisAddr, s.cfg.CacheTTL)
		defer func() { _ = redisCache.Close() }()
		forecastCache = redisCache
		log.Printf("[System] Forecast cache: redis (%s, ttl %s)", s.cfg.RedisAddr, s.cfg.CacheTTL)
	default:
		forecastCache = cache.NewMemory(s.cfg.CacheCapacity)
		log.Printf("[System] Forecast cache: memory (capacity %d)", s.cfg.CacheCapacity)
	}

	forecaster := forecast.NewClient(s.cfg.ModelHost, s.cfg.ForecastTimeout)

	extractor := extract.NewExtractor(lex, s.cfg.FuzzyAccept, s.cfg.FuzzySuggest)
	classifier := intent.NewClassifier(s.cfg.ConfidenceFloor)
	resolver := resolve.New(table, forecaster, forecastCache)
	composer := compose.NewComposer(rand.New(rand.NewSource(time.Now().UnixNano())))

	chatEngine := engine.New(lex, extractor, classifier, resolver, composer)

	// ==========================================
	// Initialize and Start HTTP Server
	// ==========================================

	handler := httpserver.NewHandler(chatEngine)

	s.httpServer = &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: handler.Routes(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("[System] 🌐 Starting REST API Server on :%s", s.cfg.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Error] HTTP server failed: %v", err)
		}
	}()

	<-stop
	log.Println("[System] 🛑 Shutdown signal received. Draining connections...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Error] HTTP shutdown error: %v", err)
	}

	log.Println("[System] ✅ Server stopped gracefully.")
	return nil
}

func (s *Server) openStore() (database.PriceRepository, error) {
	if s.cfg.DBDriver == "sqlite" {
		return sqlite.NewSQLiteStore(s.cfg.DBPath)
	}

	conn, err := sql.Open(sqliteshim.ShimName, s.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return bunstore.NewBunStore(conn, sqlitedialect.New())
}
