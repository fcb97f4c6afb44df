package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"socialfeed/internal/config"
)

// Store names a logical database. Every query in the repository layer runs
// against exactly one of these pools.
type Store string

const (
	StoreUser Store = "user"
	StoreFeed Store = "feed"
)

type DB struct {
	*sqlx.DB
}

// Databases holds the connection pool for each configured logical store.
// It is constructed once at startup and passed down explicitly; there is no
// package-level registry.
type Databases struct {
	stores map[Store]*DB
}

func Connect(cfg *config.Config) (*Databases, error) {
	dbs := &Databases{stores: make(map[Store]*DB)}

	for store, dbCfg := range map[Store]config.DB{
		StoreUser: cfg.DBUser,
		StoreFeed: cfg.DBFeed,
	} {
		db, err := connectStore(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("store %q: %w", store, err)
		}
		dbs.stores[store] = db
		log.Printf("Connected to store %q (dbname=%s)", store, dbCfg.DbNAME)
	}

	return dbs, nil
}

func connectStore(cfg config.DB) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DbHOST,
		cfg.DbPORT,
		cfg.DbUSER,
		cfg.DbPASSWORD,
		cfg.DbNAME,
		cfg.DbSSLMODE,
	)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &DB{db}, nil
}

// Get returns the pool for a logical store. Asking for a store that was
// never configured is a wiring bug, not a runtime condition, so it panics
// immediately instead of returning nil.
func (d *Databases) Get(name Store) *DB {
	db, ok := d.stores[name]
	if !ok {
		panic(fmt.Sprintf("database: store %q is not configured", name))
	}
	return db
}

func (d *Databases) Close() {
	for store, db := range d.stores {
		if err := db.Close(); err != nil {
			log.Printf("Error closing store %q: %v", store, err)
		}
	}
}

func (d *Databases) HealthCheck(ctx context.Context) error {
	for store, db := range d.stores {
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("store %q: %w", store, err)
		}
	}
	return nil
}

func (db *DB) RunMigrations(migrationFilePath string) error {
	if _, err := os.Stat(migrationFilePath); os.IsNotExist(err) {
		return fmt.Errorf("migration file not found: %s", migrationFilePath)
	}

	migrationSQL, err := os.ReadFile(migrationFilePath)
	if err != nil {
		return fmt.Errorf("error reading migration file: %w", err)
	}

	log.Printf("Applying migrations from: %s", migrationFilePath)

	_, err = db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	return nil
}
