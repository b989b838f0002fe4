package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/forsa-manager/internal/logging"
	"github.com/dmitrijs2005/forsa-manager/internal/sandbox"
	"github.com/dmitrijs2005/forsa-manager/internal/sandbox/config"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	app, err := sandbox.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}

}
