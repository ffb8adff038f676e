// Package storage picks the reservation store backend from configuration.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	redisad "lasante_hotel/internal/adapters/redis"
	"lasante_hotel/internal/domain"
	"lasante_hotel/internal/shared"
	mysqlrepo "lasante_hotel/internal/storage/mysql"
	"lasante_hotel/internal/storage/xlsx"
)

// Open returns the configured repository and a func releasing its resources.
func Open(cfg shared.Config) (domain.ReservationRepository, func() error, error) {
	switch cfg.StoreBackend {
	case shared.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db.Ping: %w", err)
		}
		log.Info().Str("backend", cfg.StoreBackend).Msg("database connection ok")
		return mysqlrepo.New(db), db.Close, nil

	case shared.BackendRedis:
		s := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RedisKey)
		log.Info().Str("backend", cfg.StoreBackend).Str("addr", cfg.RedisAddr).Str("key", cfg.RedisKey).Msg("using redis store")
		return s, s.Close, nil

	default:
		log.Info().Str("backend", shared.BackendXLSX).Str("path", cfg.XLSXPath).Msg("using spreadsheet store")
		return xlsx.New(cfg.XLSXPath), func() error { return nil }, nil
	}
}
