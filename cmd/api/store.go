package main

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/appointment-booking/internal/db"
	"github.com/BruksfildServices01/appointment-booking/internal/domain/booking"
	infraRepo "github.com/BruksfildServices01/appointment-booking/internal/infra/repository"
)

type documentStore interface {
	booking.DocumentStore
	booking.Pinger
}

// backend is the opened document store plus what it needs at shutdown.
type backend struct {
	store documentStore
	db    *gorm.DB // set for the postgres driver only
	close func(context.Context) error
}

func openBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) (*backend, error) {
	switch cfg.DocstoreDriver {
	case config.DriverPostgres:
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			store: infraRepo.NewDocumentGormRepository(db),
			db:    db,
			close: func(context.Context) error { return dbpkg.CloseDB(db) },
		}, nil

	case config.DriverMongo:
		client, database, err := dbpkg.NewMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			store: infraRepo.NewDocumentMongoRepository(database),
			close: client.Disconnect,
		}, nil

	case config.DriverRedis:
		rdb, err := dbpkg.NewRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			store: infraRepo.NewDocumentRedisRepository(rdb),
			close: func(context.Context) error { return rdb.Close() },
		}, nil

	case config.DriverMemory:
		log.Warn("using in-memory document store, data is lost on restart")
		return &backend{
			store: infraRepo.NewDocumentMemoryRepository(),
			close: func(context.Context) error { return nil },
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.DocstoreDriver)
}
