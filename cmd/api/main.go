// Package main - ponto de entrada do serviço de evolução acadêmica.
//
// O serviço calcula relatórios de evolução curricular a partir do histórico
// escolar oficial: classificação das disciplinas cursadas, resolução de
// equivalências, agregação de créditos, avaliação de blocos e trilhas e o
// semestre de liberação do estágio.
//
// A arquitetura segue Clean Architecture e DDD:
// - Domain: motor de cálculo puro, sem dependências externas
// - Application: orquestração do caso de uso de consulta
// - Infrastructure: registro acadêmico, PostgreSQL, Redis
// - Interface: API REST
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/evolucao-hub/evolucao-academica/config"
	"github.com/evolucao-hub/evolucao-academica/internal/application/query"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/evolucao"
	"github.com/evolucao-hub/evolucao-academica/internal/infrastructure/external/jupiter"
	"github.com/evolucao-hub/evolucao-academica/internal/infrastructure/persistence/postgres"
	"github.com/evolucao-hub/evolucao-academica/internal/infrastructure/persistence/redis"
	httpserver "github.com/evolucao-hub/evolucao-academica/internal/interface/http"
	"github.com/evolucao-hub/evolucao-academica/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURAÇÃO
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	log := setupLogger(cfg)
	log.Info("starting evolucao-academica",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.Bool("debug", cfg.App.Debug),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 2. PARÂMETROS POR CURSO
	// ─────────────────────────────────────────────────────────────────────────
	programas, err := config.LoadProgramas(cfg.App.ProgramasPath)
	if err != nil {
		return fmt.Errorf("failed to load course parameters: %w", err)
	}
	estagioPorCurso := make(map[string]evolucao.ParametrosEstagio, len(programas))
	for cursoID, p := range programas {
		estagioPorCurso[cursoID] = evolucao.ParametrosEstagio{SemestreMinimo: p.SemestreMinimo}
	}
	log.Info("course parameters loaded", logger.Int("cursos", len(programas)))

	// ─────────────────────────────────────────────────────────────────────────
	// 3. BANCO DE DADOS (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database")
	dbConn, err := postgres.NewConnection(ctx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	migrator := postgres.NewMigrator(dbConn)
	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database ready")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. CACHE (Redis, opcional)
	// ─────────────────────────────────────────────────────────────────────────
	var (
		redisCache    *redis.Cache
		evolucaoCache query.EvolucaoCache
	)
	if !cfg.Redis.Disabled {
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns

		redisCache, err = redis.NewCache(redisCfg)
		if err != nil {
			// Sem cache o serviço apenas recalcula a cada requisição.
			log.Warn("failed to connect to Redis, report caching disabled", logger.Err(err))
		} else {
			defer redisCache.Close()
			evolucaoCache = redis.NewEvolucaoCache(redisCache, cfg.Redis.EvolucaoTTL)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REGISTRO ACADÊMICO (Jupiter)
	// ─────────────────────────────────────────────────────────────────────────
	jupiterCfg := jupiter.DefaultClientConfig(cfg.Jupiter.BaseURL)
	jupiterCfg.Timeout = cfg.Jupiter.RequestTimeout
	jupiterCfg.RateLimiterConfig.RequestsPerMinute = cfg.Jupiter.RateLimit
	jupiterCfg.RateLimiterConfig.BurstSize = cfg.Jupiter.RateLimitBurst
	jupiterCfg.MaxRetries = cfg.Jupiter.MaxRetries
	jupiterCfg.RetryBaseDelay = cfg.Jupiter.RetryBaseDelay
	jupiterCfg.RetryMaxDelay = cfg.Jupiter.RetryMaxDelay
	jupiterCfg.CircuitBreakerThreshold = cfg.Jupiter.CircuitBreakerThreshold
	jupiterCfg.CircuitBreakerTimeout = cfg.Jupiter.CircuitBreakerTimeout
	jupiterCfg.CircuitBreakerHalfOpenMax = cfg.Jupiter.CircuitBreakerHalfOpenMax
	jupiterCfg.Logger = log
	jupiterCfg.Debug = cfg.App.Debug

	jupiterClient := jupiter.NewClient(jupiterCfg)

	// ─────────────────────────────────────────────────────────────────────────
	// 6. CAMADA DE APLICAÇÃO
	// ─────────────────────────────────────────────────────────────────────────
	engine := evolucao.NewEngine(estagioPorCurso)
	curriculoRepo := postgres.NewCurriculoRepository(dbConn)
	regrasRepo := postgres.NewRegrasRepository(dbConn)

	evolucaoHandler := query.NewComputeEvolutionHandler(
		jupiterClient,
		curriculoRepo,
		regrasRepo,
		engine,
		evolucaoCache,
		log,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. SERVIDOR HTTP
	// ─────────────────────────────────────────────────────────────────────────
	httpCfg := httpserver.DefaultConfig()
	httpCfg.Host = cfg.HTTP.Host
	httpCfg.Port = cfg.HTTP.Port
	httpCfg.ReadTimeout = cfg.HTTP.ReadTimeout
	httpCfg.WriteTimeout = cfg.HTTP.WriteTimeout
	httpCfg.IdleTimeout = cfg.HTTP.IdleTimeout
	httpCfg.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpCfg.MetricsEnabled = cfg.Observability.MetricsEnabled
	httpCfg.MetricsPath = cfg.Observability.MetricsPath
	httpCfg.Debug = cfg.App.Debug

	checks := map[string]httpserver.HealthCheck{
		"database": dbConn.Ping,
		"registry": func(ctx context.Context) error {
			if !jupiterClient.IsHealthy(ctx) {
				return fmt.Errorf("registry unreachable")
			}
			return nil
		},
	}
	if redisCache != nil {
		checks["cache"] = redisCache.Ping
	}

	server := httpserver.NewServer(httpCfg, httpserver.Dependencies{
		Evolucao: evolucaoHandler,
		Checks:   checks,
		Logger:   log,
		Version:  cfg.App.Version,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- err
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 8. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("evolucao-academica is running", logger.String("address", server.Address()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("http server error", logger.Err(err))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Err(err))
		return err
	}

	log.Info("shutdown completed")
	return nil
}

// setupLogger configura o logging estruturado a partir da configuração de
// observabilidade.
func setupLogger(cfg *config.Config) *logger.Logger {
	opts := logger.DefaultOptions()
	opts.Level = logger.ParseLevel(cfg.Observability.LogLevel)
	if cfg.App.Debug {
		opts.Level = logger.LevelDebug
	}
	return logger.New(opts)
}
