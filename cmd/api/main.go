package main

import (
	"fmt"
	"log"
	"net/http"

	"socialfeed/cmd/app"
	"socialfeed/internal/config"
	handlers "socialfeed/internal/handler"
	"socialfeed/internal/middleware"
	"socialfeed/internal/session"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.SessionHashKey == "" || cfg.SessionBlockKey == "" {
		log.Fatal("SESSION_HASH_KEY and SESSION_BLOCK_KEY are not set in the .env file")
	}

	dbs, services := app.App(cfg)
	defer dbs.Close()
	defer services.Recounter.Close()

	sessions := session.NewCodec([]byte(cfg.SessionHashKey), []byte(cfg.SessionBlockKey))

	handler := handlers.NewHandlers(services, sessions, dbs, cfg)

	// setting up routes
	router := handler.Routes()

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Server listening on %s\n", addr)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
