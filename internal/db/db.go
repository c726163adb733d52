package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/bookshelf-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(cfg *config.Config) gorm.Dialector {
	if cfg.DB.Driver == config.DriverSQLite {
		return sqlite.Open(cfg.DSN())
	}
	return postgres.Open(cfg.DSN())
}

// ConnectWithRetry opens the configured database and pings it, retrying up
// to cfg.DB.MaxAttempts times. It gives up early when ctx is done.
func ConnectWithRetry(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	for attempt := 1; attempt <= cfg.DB.MaxAttempts; attempt++ {
		db, err = gorm.Open(dialector(cfg), gormCfg)
		if err == nil {
			sqlDB, err2 := db.DB()
			if err2 == nil {
				pingErr := sqlDB.PingContext(ctx)
				if pingErr == nil {
					return db, nil
				}
				err = pingErr
			} else {
				err = err2
			}
		}

		log.Warn().
			Err(err).
			Str("driver", cfg.DB.Driver).
			Int("attempt", attempt).
			Int("max_attempts", cfg.DB.MaxAttempts).
			Msg("db not ready")

		if attempt == cfg.DB.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DB.RetryDelay):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", cfg.DB.MaxAttempts, err)
}
