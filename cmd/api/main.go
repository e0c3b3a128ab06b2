package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	server "polimanage/internal/adapters/http_server"
	"polimanage/internal/adapters/observability"
	"polimanage/internal/app"
	"polimanage/internal/domain"
	"polimanage/internal/shared"
	"polimanage/internal/storage/memory"
	mysqlrepo "polimanage/internal/storage/mysql"
	pgrepo "polimanage/internal/storage/postgres"
)

const version = "1.0.0"

type backend struct {
	pistas domain.PistaRepository
	clubs  domain.ClubRepository
	ping   server.Pinger
	close  func()
}

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("bye")
}

// run returns once every listener has shut down; deferred cleanup happens
// before main decides the exit code.
func run(cfg shared.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, "polimanage-api", version, cfg.AppEnv, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("tracer init: %w", err)
	}

	be, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	defer be.close()
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection ok")

	// http
	srv := server.New(server.Options{
		RequestTimeout: cfg.RequestTimeout,
		AllowedOrigins: cfg.AllowedOrigins(),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Pistas:  app.NewPistaService(be.pistas),
		Clubs:   app.NewClubService(be.clubs),
		DB:      be.ping,
		Version: version,
	})

	var handler http.Handler = srv.Mux()
	if cfg.OTLPEndpoint != "" {
		handler = otelhttp.NewHandler(handler, "http.server")
	}
	servers := []*http.Server{{Addr: cfg.HTTPAddr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}}
	if cfg.MetricsAddr != "" {
		servers = append(servers, observability.NewServer(cfg.MetricsAddr, reg))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		s := s
		g.Go(func() error {
			log.Info().Str("addr", s.Addr).Msg("listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		for _, s := range servers {
			if err := s.Shutdown(sctx); err != nil {
				log.Warn().Err(err).Str("addr", s.Addr).Msg("shutdown")
			}
		}
		return shutdownTracer(sctx)
	})

	return g.Wait()
}

func openBackend(ctx context.Context, cfg shared.Config) (backend, error) {
	switch cfg.DBDriver {
	case "mysql":
		db, err := mysqlrepo.Open(ctx, mysqlrepo.Options{
			Host: cfg.DBHost, Port: cfg.DBPort, User: cfg.DBUser, Password: cfg.DBPassword,
			Name: cfg.DBName, MaxConns: cfg.DBMaxConns,
		})
		if err != nil {
			return backend{}, err
		}
		repo := mysqlrepo.New(db)
		return backend{
			pistas: repo.Pistas(),
			clubs:  repo.Clubs(),
			ping:   server.PingFunc(db.PingContext),
			close:  func() { _ = db.Close() },
		}, nil
	case "memory":
		store := memory.NewStore()
		if cfg.MemorySeedFile == "" {
			log.Warn().Msg("DB_DRIVER=memory without MEMORY_SEED_FILE: serving an empty store")
		} else if err := store.LoadSeedFile(cfg.MemorySeedFile); err != nil {
			return backend{}, err
		}
		return backend{
			pistas: memory.NewPistaRepo(store),
			clubs:  memory.NewClubRepo(store),
			close:  func() {},
		}, nil
	default:
		pool, err := pgrepo.Open(ctx, pgrepo.Options{
			Host: cfg.DBHost, Port: cfg.DBPort, User: cfg.DBUser, Password: cfg.DBPassword,
			Name: cfg.DBName, SSLMode: cfg.DBSSLMode, MaxConns: int32(cfg.DBMaxConns),
			LogQueries: cfg.DBLogQueries,
		}, log.Logger)
		if err != nil {
			return backend{}, err
		}
		return backend{
			pistas: pgrepo.NewPistaRepo(pool),
			clubs:  pgrepo.NewClubRepo(pool),
			ping:   pool,
			close:  pool.Close,
		}, nil
	}
}
