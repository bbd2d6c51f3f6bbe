package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"spa-system/pkg/constants"
	"spa-system/pkg/utils"
)

type userSeed struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Role     string
}

var usersData = []userSeed{
	{"Администратор", "admin@spa.local", "+84901000001", "admin123", constants.RoleManager},
	{"Ресепшн Смена 1", "reception@spa.local", "+84901000002", "reception123", constants.RoleReceptionist},
	{"Мастер Линь", "linh@spa.local", "+84901000003", "tech123", constants.RoleTechnician},
	{"Мастер Хоа", "hoa@spa.local", "+84901000004", "tech123", constants.RoleTechnician},
}

func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'users'...")

	query := `INSERT INTO users (full_name, email, phone, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (email) DO NOTHING`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, u := range usersData {
		hash, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, u.FullName, u.Email, u.Phone, hash, u.Role); err != nil {
			log.Printf("Ошибка при вставке пользователя '%s': %v", u.Email, err)
			return err
		}
	}
	return tx.Commit(ctx)
}
