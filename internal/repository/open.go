package repository

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/config"
	"github.com/BerylCAtieno/pdf-summary-pipeline/internal/db"
)

// Open builds the Repository selected by cfg.StoreDriver. The returned func
// releases the underlying connection.
func Open(ctx context.Context, cfg *config.Config) (Repository, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		database, _, err := db.OpenSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return NewRepository(database), database.Close, nil

	case config.DriverMongo:
		repo, disconnect, err := NewMongoRepository(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() error { return disconnect(context.Background()) }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
