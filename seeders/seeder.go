package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries наполняет справочники: прайс-лист и персонал.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения справочников...")

	if err := seedServices(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения услуг: %v", err)
	}
	if err := seedUsers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения пользователей: %v", err)
	}
	log.Println("✅ Наполнение справочников завершено!")
}

// SeedDemoData добавляет демонстрационные данные для стенда.
func SeedDemoData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения демо-данных...")

	if err := seedLeads(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения лидов: %v", err)
	}
	log.Println("✅ Наполнение демо-данных завершено!")
}
