package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type serviceSeed struct {
	Name            string
	Price           int64
	DurationMinutes int
}

var servicesData = []serviceSeed{
	{"Лазерное удаление тату", 1500000, 60},
	{"Чистка лица", 500000, 45},
	{"Пилинг", 700000, 60},
	{"Лечение акне", 900000, 45},
	{"Омоложение кожи", 2000000, 90},
	{"Удаление пигментации", 1200000, 60},
	{"Массаж лица", 400000, 30},
}

func seedServices(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'services'...")

	query := `INSERT INTO services (name, price, duration_minutes)
			  SELECT $1, $2, $3
			  WHERE NOT EXISTS (SELECT 1 FROM services WHERE name = $1)`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, s := range servicesData {
		if _, err := tx.Exec(ctx, query, s.Name, s.Price, s.DurationMinutes); err != nil {
			log.Printf("Ошибка при вставке услуги '%s': %v", s.Name, err)
			return err
		}
	}
	return tx.Commit(ctx)
}
