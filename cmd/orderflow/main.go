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

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bookvault/orderflow/internal/algo/selector"
	"github.com/bookvault/orderflow/internal/bench"
	"github.com/bookvault/orderflow/internal/config"
	"github.com/bookvault/orderflow/internal/engine"
	"github.com/bookvault/orderflow/internal/persistence"
	"github.com/bookvault/orderflow/internal/server"
	"github.com/bookvault/orderflow/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	if len(os.Args) > 1 && os.Args[1] == "bench" {
		runBench(os.Args[2:])
		return
	}

	configPath := ""
	fs := flag.NewFlagSet("orderflow", flag.ExitOnError)
	fs.StringVar(&configPath, "config", "", "path to config.yaml")
	fs.Parse(os.Args[1:])

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create logger
	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// Create the processing engine
	eng := engine.New(zapLogger,
		engine.WithSortPolicy(selector.SortPolicy{
			InsertionMax: cfg.Engine.SortInsertionMax,
			QuickMax:     cfg.Engine.SortQuickMax,
		}),
		engine.WithFuzzyThreshold(cfg.Engine.FuzzyThreshold),
		engine.WithAvailabilityTimeout(cfg.Engine.AvailabilityTimeout),
	)

	// Create the persistence sink
	var sink persistence.Sink = persistence.NopSink{}
	if cfg.Database.DSN != "" {
		sqlSink, err := persistence.NewSQLiteSink(cfg.Database.DSN, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to open persistence sink", zap.Error(err))
		}
		sink = sqlSink
	}

	// Create and start the API server
	srv := server.NewServer(zapLogger, eng, sink)
	go func() {
		if err := srv.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server exited", zap.Error(err))
		}
	}()

	// Wait for interrupt, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// runBench executes the benchmark harness and prints a YAML report.
func runBench(args []string) {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	sizesFlag := fs.String("sizes", "10,50,500", "comma-separated dataset sizes")
	seed := fs.Int64("seed", time.Now().UnixNano(), "dataset generation seed")
	parallel := fs.Bool("parallel", false, "fan runs out over goroutines")
	fs.Parse(args)

	var sizes []int
	for _, raw := range strings.Split(*sizesFlag, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n <= 0 {
			log.Fatalf("invalid size %q", raw)
		}
		sizes = append(sizes, n)
	}

	report := bench.Run(bench.Options{
		Sizes:    sizes,
		Seed:     *seed,
		Parallel: *parallel,
	})

	out, err := yaml.Marshal(report)
	if err != nil {
		log.Fatalf("failed to encode report: %v", err)
	}
	fmt.Print(string(out))
}
