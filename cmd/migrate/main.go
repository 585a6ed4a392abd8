package main

import (
	"database/sql"
	"flag"
	"log"

	"restaurant-system/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	dir := flag.String("dir", "migrations", "каталог с файлами миграций")
	command := flag.String("command", "up", "команда goose: up, down, status, version")
	flag.Parse()

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ Не удалось открыть соединение с БД: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("❌ Не удалось установить диалект: %v", err)
	}

	switch *command {
	case "up":
		err = goose.Up(db, *dir)
	case "down":
		err = goose.Down(db, *dir)
	case "status":
		err = goose.Status(db, *dir)
	case "version":
		err = goose.Version(db, *dir)
	default:
		log.Fatalf("❌ Неизвестная команда: %s", *command)
	}
	if err != nil {
		log.Fatalf("❌ Миграция завершилась с ошибкой: %v", err)
	}
	log.Println("✅ Готово")
}
