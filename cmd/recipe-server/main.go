package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/oumaimabzd/recipe-project/internal/app"
	"github.com/oumaimabzd/recipe-project/internal/config"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, errLoad := config.Load(*configPath)
	if errLoad != nil {
		log.WithError(errLoad).Fatal("load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if errRun := app.Run(ctx, cfg); errRun != nil {
		log.WithError(errRun).Fatal("server exited")
	}
}
