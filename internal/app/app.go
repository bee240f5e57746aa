// Package app wires configuration, storage and services into a runnable
// Cuidate instance.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/XxRubinhoxX/Cuidate-beta/internal/care"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/config"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/consultation"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/identity"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/domain/monitoring"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/db"
	"github.com/XxRubinhoxX/Cuidate-beta/internal/platform/store"
)

// Collection names used by the postgres snapshot table.
const (
	UsersCollection         = "users"
	ConsultationsCollection = "consultations"
	RecordsCollection       = "records"
)

type App struct {
	Config        *config.Config
	Logger        zerolog.Logger
	Users         *identity.Service
	Consultations *consultation.Service
	Records       *monitoring.Service
	Desk          *care.Desk

	// Seeded is true when this run created the example accounts.
	Seeded bool

	pool *pgxpool.Pool
}

// NewLogger builds the process logger. Output goes to w (stderr in the CLI,
// so it never mixes with the console menus). Every line carries session_id.
func NewLogger(cfg *config.Config, w io.Writer) (zerolog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return zerolog.Nop(), err
	}

	logger := zerolog.New(w)
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w})
	}
	return logger.Level(level).With().
		Timestamp().
		Str("session_id", uuid.NewString()).
		Logger(), nil
}

// New opens the configured stores, loads every collection and seeds the
// example accounts on first run.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	var users, consultations, records store.Store
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.Connect(ctx, db.Options{
			URL:      cfg.DatabaseURL,
			MaxConns: cfg.DBMaxConns,
			MinConns: cfg.DBMinConns,
		}, logger, store.EnsureSchema)
		if err != nil {
			return nil, err
		}

		a.pool = pool
		users = store.NewPGStore(pool, UsersCollection)
		consultations = store.NewPGStore(pool, ConsultationsCollection)
		records = store.NewPGStore(pool, RecordsCollection)
	case config.DriverFile:
		users = store.NewFileStore(cfg.Path(cfg.UsersFile), logger)
		consultations = store.NewFileStore(cfg.Path(cfg.ConsultationsFile), logger)
		records = store.NewFileStore(cfg.Path(cfg.RecordsFile), logger)
		logger.Debug().Str("data_dir", cfg.DataDir).Msg("using file store")
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	a.Users = identity.NewService(ctx, users, logger)
	a.Consultations = consultation.NewService(ctx, consultations, logger)
	a.Records = monitoring.NewService(ctx, records, logger)
	a.Desk = care.NewDesk(a.Users, a.Consultations, logger)
	a.Seeded = a.Users.Seed(ctx)
	return a, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
