package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/petrijr/crewcanvas"
	"github.com/petrijr/crewcanvas/internal/canvas"
	"github.com/petrijr/crewcanvas/internal/server"
	"github.com/petrijr/crewcanvas/internal/simulate"
	"github.com/petrijr/crewcanvas/pkg/api"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a canvas over HTTP",
	Long: `Starts the canvas JSON API. The graph lives in memory; explicit saves go
to the configured store (memory, sqlite, or postgres).`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "path to yaml config")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}

	store, cleanup, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	logger := slog.Default()
	ctrl := canvas.New(canvas.Config{
		HistorySize:    cfg.HistorySize,
		EnforceAcyclic: cfg.EnforceAcyclic,
		OnSave:         crewcanvas.StoreSaver(store, cfg.CanvasID),
		Logger:         logger,
		Simulator: simulate.Config{
			Observer:        api.NewLoggingDeployObserver(logger),
			InitialDelayMin: cfg.Deploy.InitialDelayMin,
			InitialDelayMax: cfg.Deploy.InitialDelayMax,
			StepDelayMin:    cfg.Deploy.StepDelayMin,
			StepDelayMax:    cfg.Deploy.StepDelayMax,
		},
	})

	app := server.New(ctrl)
	logger.Info("serving canvas",
		slog.String("addr", cfg.Addr),
		slog.String("store", cfg.Database.Driver),
		slog.String("canvas_id", cfg.CanvasID),
	)
	return app.Listen(cfg.Addr)
}

func openStore(cmd *cobra.Command, cfg Config) (crewcanvas.GraphStore, func(), error) {
	switch cfg.Database.Driver {
	case "", "memory":
		return crewcanvas.NewMemoryStore(), func() {}, nil
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		store, err := crewcanvas.NewSQLiteStore(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	case "postgres":
		pool, err := pgxpool.New(cmd.Context(), cfg.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := crewcanvas.NewPostgresStore(pool)
		if err := store.CreateSchema(cmd.Context()); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}
