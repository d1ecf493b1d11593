package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"quantum-shift/internal/app"
	"quantum-shift/internal/config"
	"quantum-shift/internal/domain"
	"quantum-shift/internal/infra/memory"
	pgloader "quantum-shift/internal/infra/postgres"
	redisinfra "quantum-shift/internal/infra/redis"
	transport "quantum-shift/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// backends holds the optional external stores named in the config.
type backends struct {
	redis *redis.Client
	pool  *pgxpool.Pool
}

func (b backends) Close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
}

func connectBackends(ctx context.Context, cfg config.Config) (backends, error) {
	var b backends
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return backends{}, err
		}
		b.pool = pool
	}
	return b, nil
}

// newBankRepository layers the bank sources: Postgres first when configured, then
// the bank file and the built-in bank, cached in Redis or in memory.
func newBankRepository(cfg config.Config, b backends) (app.BankRepository, error) {
	banks := []domain.Bank{domain.DefaultBank()}
	if cfg.Quiz.BankFile != "" {
		bank, err := memory.ReadBankFile(cfg.Quiz.BankFile)
		if err != nil {
			return nil, fmt.Errorf("bank file %s: %w", cfg.Quiz.BankFile, err)
		}
		banks = append(banks, bank)
	}

	var loader memory.BankLoader = memory.NewStaticBankLoader(banks...)
	if b.pool != nil {
		loader = memory.ChainLoader{pgloader.NewBankLoader(b.pool), loader}
	}

	ttl := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	if b.redis != nil {
		return redisinfra.NewBankRepository(b.redis, loader, ttl), nil
	}
	return memory.NewBankRepository(loader, ttl), nil
}

func defaultBankID(cfg config.Config) string {
	if cfg.Quiz.DefaultBank != "" {
		return cfg.Quiz.DefaultBank
	}
	return domain.DefaultBankID
}

func controllerOptions(cfg config.Config) []app.Option {
	return []app.Option{
		app.WithTimePerQuestion(config.TTLDuration(cfg.Quiz.TimePerQuestion, app.DefaultTimePerQuestion)),
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	b, err := connectBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	banks, err := newBankRepository(cfg, b)
	if err != nil {
		return err
	}

	// A malformed default bank is a configuration error: refuse to start.
	defaultBank := defaultBankID(cfg)
	if _, err := banks.GetBank(ctx, defaultBank); err != nil {
		return fmt.Errorf("default bank %q: %w", defaultBank, err)
	}

	var rounds app.RoundRegistry
	if b.redis != nil {
		rounds = redisinfra.NewRoundRegistry(b.redis, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	} else {
		rounds = memory.NewRoundRegistry()
	}
	service := app.NewRoundService(rounds, banks, controllerOptions(cfg)...)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service, defaultBank),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s (default bank %s)", finalPort, defaultBank)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
