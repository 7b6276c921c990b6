package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/cardroom/rummyd/internal/randutil"
	"github.com/cardroom/rummyd/internal/server"
)

// ServerCmd runs the HTTP-polled room server.
type ServerCmd struct {
	Config   string `short:"c" default:"rummyd.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" help:"Listen address (overrides config)"`
	Port     int    `short:"p" help:"Listen port (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Seed     int64  `help:"Deterministic RNG seed (0 = random)"`
}

func (s *ServerCmd) Run() error {
	cfg, err := server.LoadConfig(s.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if s.Addr != "" {
		cfg.Server.Address = s.Addr
	}
	if s.Port != 0 {
		cfg.Server.Port = s.Port
	}
	if s.LogLevel != "" {
		cfg.Server.LogLevel = s.LogLevel
	}

	level, err := log.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	rng := randutil.NewRandom()
	if s.Seed != 0 {
		rng = randutil.New(s.Seed)
		logger.Info("using deterministic seed", "seed", s.Seed)
	}

	clock := quartz.NewReal()
	store := server.NewRoomStore(cfg.Rules(), clock, rng, logger)
	svc := server.NewService(store, logger)
	api := server.NewAPI(svc, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: api.Router(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		store.RunEviction(ctx, cfg.RoomTTL(), time.Minute)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
