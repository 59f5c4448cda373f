package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iankisali/digitwin/internal/cache"
	"github.com/iankisali/digitwin/internal/config"
	"github.com/iankisali/digitwin/internal/models"
	"github.com/iankisali/digitwin/internal/shell"
	"github.com/iankisali/digitwin/internal/twin"
	"github.com/iankisali/digitwin/server"
	"github.com/iankisali/digitwin/web"
)

var (
	version = "dev"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	tmpl, err := web.Templates()
	if err != nil {
		panic(err)
	}

	page := shell.New(models.DefaultContent(), twin.Mount(cfg.TwinScriptURL), tmpl.ExecuteTemplate)

	srv := server.NewServer(version, cfg.Port, cfg.RateLimit, web.Static(), tmpl.ExecuteTemplate, page, cache.NewCache(cfg.CacheTTL))

	go srv.Start()
	defer srv.Close()

	slog.Info("Started server", slog.String("listen_addr", ":"+cfg.Port), slog.String("version", version))
	si := make(chan os.Signal, 1)
	signal.Notify(si, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-si
	slog.Info("Shutting down server")
}
