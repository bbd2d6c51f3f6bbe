// Package migrations встраивает SQL-миграции в бинарник,
// чтобы мигратор не зависел от рабочей директории.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
