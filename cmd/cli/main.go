package main

import (
	"context"
	"log"
	"os"

	"github.com/progrestian/izin/internal/auth"
	"github.com/progrestian/izin/internal/cli"
	"github.com/progrestian/izin/internal/config"
	"github.com/progrestian/izin/internal/password"
	"github.com/progrestian/izin/internal/users"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := users.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	engine := auth.NewService(users.NewPostgresRepository(db), password.Argon2{}, []byte(cfg.Secret))

	app := cli.NewApp(engine)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}
}
