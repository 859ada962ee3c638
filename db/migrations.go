// Package db carries the SQL migrations applied by the migrate command.
package db

import "embed"

// Migrations holds the goose files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
