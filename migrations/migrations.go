// Package migrations ships the schema with the binary so deployments do not need the SQL files on disk.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
