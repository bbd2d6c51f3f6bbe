package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type leadSeed struct {
	FullName string
	Phone    string
	Source   string
}

var leadsData = []leadSeed{
	{"Нгуен Тхи Май", "+84912000001", "facebook"},
	{"Чан Ван Хунг", "+84912000002", "zalo"},
	{"Ле Тхи Лан", "+84912000003", "walk-in"},
}

func seedLeads(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'leads'...")

	query := `INSERT INTO leads (full_name, phone, source)
			  SELECT $1, $2, $3
			  WHERE NOT EXISTS (SELECT 1 FROM leads WHERE phone = $2)`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, l := range leadsData {
		if _, err := tx.Exec(ctx, query, l.FullName, l.Phone, l.Source); err != nil {
			log.Printf("Ошибка при вставке лида '%s': %v", l.FullName, err)
			return err
		}
	}
	return tx.Commit(ctx)
}
