package main

import (
	"context"
	"log"
	"os"

	"github.com/ruchira-b/ETL-pipeline/internal/app"
	"github.com/ruchira-b/ETL-pipeline/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	a, err := app.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
