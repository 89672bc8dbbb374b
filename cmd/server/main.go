package main

import (
	"context"
	"log"

	"github.com/progrestian/izin/internal/config"
	"github.com/progrestian/izin/internal/server"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
