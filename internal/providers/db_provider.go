package providers

import (
	"database/sql"
	"fmt"
	"storemon/internal/structures"
	"time"

	_ "github.com/lib/pq"
)

// NewDatabaseProvider opens the Postgres connection pool. Returns nil when
// the database is disabled; callers fall back to the in-memory repositories.
func NewDatabaseProvider(conf *structures.Config, logger Logger) (*sql.DB, error) {
	if !conf.Database.Enabled {
		logger.Infof(TypeApp, "Database disabled, using in-memory repositories")
		return nil, nil
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		conf.Database.Host, conf.Database.Port, conf.Database.User,
		conf.Database.Password, conf.Database.Name, conf.Database.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Infof(TypeApp, "Connected to postgres %s:%d/%s",
		conf.Database.Host, conf.Database.Port, conf.Database.Name)
	return db, nil
}
