package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/song-ranker-admin/gotrue"
	"github.com/jrsteele09/song-ranker-admin/internal/config"
	"github.com/jrsteele09/song-ranker-admin/members"
	"github.com/jrsteele09/song-ranker-admin/members/pgstore"
	"github.com/jrsteele09/song-ranker-admin/members/postgrest"
	"github.com/jrsteele09/song-ranker-admin/server"
	"github.com/jrsteele09/song-ranker-admin/server/loginsession"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sessionCleanupInterval = 15 * time.Minute

func main() {
	for {
		if err := run(); err != nil {
			log.Error().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c.GetEnv())
	if err := c.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpClient := &http.Client{Timeout: c.GetRemoteTimeout()}

	memberRepo, closeRepo, err := newMemberRepo(ctx, c, httpClient)
	if err != nil {
		return err
	}
	defer closeRepo()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := server.New(c, server.Services{
		Auth:          gotrue.New(c.GetSupabaseURL(), c.GetSupabaseAnonKey(), httpClient),
		Verifier:      gotrue.NewVerifier(ctx, c.GetSupabaseURL(), c.GetSupabaseJWTSecret()),
		Members:       memberRepo,
		LoginSessions: loginsession.NewInMemoryLoginSessionRepo(),
		Registry:      registry,
	})
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	defer handler.Close()
	go cleanupSessions(ctx, handler)

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

// newMemberRepo talks to Postgres directly when DATABASE_URL is set and to the
// REST API otherwise.
func newMemberRepo(ctx context.Context, c config.Config, httpClient *http.Client) (members.Repo, func(), error) {
	if dsn := c.GetDatabaseURL(); dsn != "" {
		pool, err := pgstore.NewPool(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("pgstore.NewPool: %w", err)
		}
		log.Info().Msg("Member profiles: postgres")
		return pgstore.NewRepository(pool), pool.Close, nil
	}
	log.Info().Msg("Member profiles: REST API")
	return postgrest.NewRepo(c.GetSupabaseURL(), c.GetSupabaseAnonKey(), httpClient), func() {}, nil
}

func setupLogging(env string) {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "DEV" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	// Code that logs through a context without a logger uses the global one.
	zerolog.DefaultContextLogger = &log.Logger
}

func cleanupSessions(ctx context.Context, s *server.Server) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CleanupIdleSessions()
		}
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
