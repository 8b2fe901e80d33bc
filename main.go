package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"schoolapi/config"
	"schoolapi/db"
	"schoolapi/handlers"
	"schoolapi/logger"
	"schoolapi/server"
)

const reconcileTimeout = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet: the level comes from the config.
		logger.New("info", logger.FormatJSON).Fatal("load config", zap.Error(err))
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store db.Store
	switch cfg.Store {
	case "memory":
		log.Warn("using in-memory store, data is lost on exit")
		store = db.NewMemoryStore()
	default:
		conn, err := db.Open(cfg.DSN())
		if err != nil {
			log.Fatal("open database", zap.Error(err))
		}
		defer conn.Close()

		// Serving does not wait for the store: reconciliation runs on the
		// side and requests against an unreachable or malformed table fail
		// on their own.
		db.NewReconciler(conn, cfg.DBName, cfg.DBTable, log).Start(ctx, reconcileTimeout)
		store = db.NewMySQLStore(conn, cfg.DBTable)
	}

	router := server.NewRouter(handlers.New(store, log), log)
	if err := server.Serve(ctx, cfg.ListenAddr(), router, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
