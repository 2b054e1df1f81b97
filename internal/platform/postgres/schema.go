package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Table describes one table of the schema: the statements creating it
// (with its indexes) and the statement dropping it.
type Table struct {
	Name   string
	Create []string
	Drop   string
}

// Tables lists every table of the application in creation order. Referenced
// tables come before the tables referencing them.
var Tables = []Table{
	{
		Name: "pais",
		Create: []string{`CREATE TABLE IF NOT EXISTS pais (
			id BIGSERIAL PRIMARY KEY,
			nombre VARCHAR(100) NOT NULL UNIQUE
		)`},
		Drop: `DROP TABLE IF EXISTS pais`,
	},
	{
		Name: "auto",
		Create: []string{
			`CREATE TABLE IF NOT EXISTS auto (
				id BIGSERIAL PRIMARY KEY,
				marca VARCHAR(50) NOT NULL CHECK (char_length(marca) >= 1),
				modelo VARCHAR(50) NOT NULL CHECK (char_length(modelo) >= 1),
				anio INTEGER NOT NULL CHECK (anio > 1900 AND anio <= 2030),
				precio NUMERIC NOT NULL CHECK (precio > 0)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_auto_marca ON auto (marca)`,
		},
		Drop: `DROP TABLE IF EXISTS auto`,
	},
	{
		Name: "venta",
		Create: []string{
			`CREATE TABLE IF NOT EXISTS venta (
				id BIGSERIAL PRIMARY KEY,
				fecha DATE NOT NULL,
				cantidad INTEGER NOT NULL CHECK (cantidad > 0),
				total NUMERIC NOT NULL CHECK (total > 0),
				auto_id BIGINT NOT NULL REFERENCES auto (id) ON DELETE RESTRICT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_venta_auto_id ON venta (auto_id)`,
		},
		Drop: `DROP TABLE IF EXISTS venta`,
	},
	{
		Name: "persona",
		Create: []string{
			`CREATE TABLE IF NOT EXISTS persona (
				id BIGSERIAL PRIMARY KEY,
				nombre VARCHAR(100) NOT NULL,
				apellido VARCHAR(100) NOT NULL,
				edad INTEGER NOT NULL CHECK (edad >= 0 AND edad <= 150),
				pais_id BIGINT NULL REFERENCES pais (id) ON DELETE SET NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_persona_pais_id ON persona (pais_id)`,
		},
		Drop: `DROP TABLE IF EXISTS persona`,
	},
	{
		Name: "usuario",
		Create: []string{`CREATE TABLE IF NOT EXISTS usuario (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(100) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			hashed_password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`},
		Drop: `DROP TABLE IF EXISTS usuario`,
	},
}

func execAll(stmts ...string) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}
}

// Migrations turns tables into goose migrations numbered from 1 in list order.
func Migrations(tables []Table) []*goose.Migration {
	migrations := make([]*goose.Migration, 0, len(tables))
	for i, t := range tables {
		migrations = append(migrations, goose.NewGoMigration(
			int64(i+1),
			&goose.GoFunc{RunTx: execAll(t.Create...)},
			&goose.GoFunc{RunTx: execAll(t.Drop)},
		))
	}
	return migrations
}

// InitSchema creates every table of tables that does not exist yet.
// Applied versions are tracked by goose, so running it on every start is safe.
func InitSchema(ctx context.Context, db *sql.DB, tables []Table, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "schema"))

	provider, err := goose.NewProvider(goose.DialectPostgres, db, nil,
		goose.WithGoMigrations(Migrations(tables)...),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return fmt.Errorf("failed to create schema provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		log.Error("schema initialization failed", slog.String("error", err.Error()))
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	for _, r := range results {
		log.Info("table created",
			slog.String("table", tables[r.Source.Version-1].Name),
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration))
	}
	log.Info("schema ready",
		slog.Int("tables", len(tables)),
		slog.Int("applied", len(results)))
	return nil
}
