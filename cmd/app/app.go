package app

import (
	"log"

	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"
	"socialfeed/internal/storage"
)

// Migration files per logical store.
var migrations = map[database.Store]string{
	database.StoreUser: "migrations/user.sql",
	database.StoreFeed: "migrations/feed.sql",
}

func App(cfg *config.Config) (*database.Databases, *service.Service) {
	// connect the logical stores
	dbs, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the databases: %v", err)
	}

	for store, file := range migrations {
		if err := dbs.Get(store).RunMigrations(file); err != nil {
			log.Printf("Warning: migrations for store %q: %v", store, err)
		}
	}

	// connect MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	// wire the dependencies
	repo := repository.NewRepository(dbs)
	services := service.NewService(repo, minioClient)

	return dbs, services
}
