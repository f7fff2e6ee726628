package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/irvandi/gotoko/config"
	"github.com/irvandi/gotoko/internal/app"
	"github.com/irvandi/gotoko/internal/produkapi"
	"github.com/irvandi/gotoko/internal/webserver"
	"github.com/irvandi/gotoko/internal/webui"
)

var (
	confFile = flag.String("conf", "/etc/gotoko.yml", "config yaml file")
	initDb   = flag.Bool("initdb", false, "drop and recreate the database schema")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*confFile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		fmt.Println("database initialized")
		return
	}

	webserver.Init(application)
	produkapi.InitRouter()
	webui.InitRouter()

	errCh := make(chan error, 1)
	go func() {
		errCh <- webserver.Listen()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			zap.S().Fatalf("web server error: %v", err)
		}
	case sig := <-quit:
		zap.S().Infof("received signal %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := webserver.Shutdown(ctx); err != nil {
			zap.S().Errorf("web server shutdown error: %v", err)
		}
	}
}
