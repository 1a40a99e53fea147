package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Moodfeed/api"
	"Moodfeed/bot"
	"Moodfeed/core"
	"Moodfeed/engine"
	"Moodfeed/holder"
	"Moodfeed/lib/sl"
	"Moodfeed/storage"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := core.MustLoad(*configPath)
	log := setupLogger(conf.Env)
	log.With(
		slog.String("config", *configPath),
		slog.String("env", conf.Env),
		slog.String("storage", conf.Storage.Backend),
	).Info("starting moodfeed")

	store := openStorage(conf, log)
	prefs := holder.Open(store, log)
	personalizer := engine.New(prefs, log)

	server := api.NewServer(conf, personalizer, log)

	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf, personalizer, log)
		if err != nil {
			log.With(
				sl.Secret(conf.Telegram.ApiKey),
			).Error("creating telegram bot", sl.Err(err))
			tgBot = nil
		}
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	if tgBot != nil {
		go func() {
			if err := tgBot.Start(); err != nil {
				log.Error("bot stopped with error", sl.Err(err))
			}
		}()
	}

	select {
	case sig := <-sigChan:
		log.Info("received signal, shutting down", slog.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			log.Error("http server stopped", sl.Err(err))
		}
	}

	if tgBot != nil {
		tgBot.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("http shutdown", sl.Err(err))
	}

	prefs.Persist()
	if err := prefs.Close(); err != nil {
		log.Error("closing storage", sl.Err(err))
	}

	log.Info("shutdown complete")
}

// openStorage never fails: a backend that cannot be opened falls back to
// the JSON file at the configured path.
func openStorage(conf *core.Config, log *slog.Logger) storage.SnapshotStorage {
	switch conf.Storage.Backend {
	case core.BackendMemory:
		log.Info("using in-memory storage")
		return storage.NewMemoryStorage()
	case core.BackendBolt:
		store, err := storage.OpenBolt(storage.BoltOptions{Path: conf.Storage.BoltPath})
		if err == nil {
			log.Info("using bolt storage", slog.String("path", conf.Storage.BoltPath))
			return store
		}
		log.With(
			slog.String("path", conf.Storage.BoltPath),
		).Error("falling back to file", sl.Err(err))
	case core.BackendMongo:
		store, err := storage.NewMongoStorage(conf.MongoURI(), conf.Mongo.Database, log.With(sl.Module("mongo")))
		if err == nil {
			log.Info("using MongoDB storage")
			return store
		}
		log.With(
			slog.String("db", conf.Mongo.Database),
			slog.String("user", conf.Mongo.User),
			sl.Secret(conf.Mongo.Password),
			slog.String("host", conf.Mongo.Host),
		).Error("falling back to file", sl.Err(err))
	}
	store := storage.NewFileStorage(conf.Storage.DataFile)
	log.Info("using file storage", slog.String("path", store.Path()))
	return store
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	switch env {
	case envLocal, envDev:
		level = slog.LevelDebug
	case envProd:
		level = slog.LevelInfo
	}
	return slog.New(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	)
}
