package utils

import (
	"database/sql"
	"time"
)

func NullInt64ToPtr(ni sql.NullInt64) *uint64 {
	if !ni.Valid {
		return nil
	}
	v := uint64(ni.Int64)
	return &v
}

func FormatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
