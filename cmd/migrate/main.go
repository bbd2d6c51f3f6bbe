package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"spa-system/migrations"
	"spa-system/pkg/config"
)

func main() {
	command := flag.String("command", "up", "команда goose: up, down, status")
	flag.Parse()

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Ошибка настройки goose: %v", err)
	}

	if err := goose.Run(*command, db, "."); err != nil {
		log.Fatalf("Ошибка миграции (%s): %v", *command, err)
	}
	log.Println("✅ Миграции применены")
}
