// Command migrate applies the embedded SQL migrations in order and can seed
// the first admin account.
package main

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
)

//go:embed migrations/*.sql
var migrations embed.FS

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := cfg.Build()
	return logger.Sugar()
}

func main() {
	logger := newLogger()
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, using the environment")
	}

	addr := flag.String("db", os.Getenv("DB_ADDR"), "postgres connection string")
	adminEmail := flag.String("admin-email", os.Getenv("SEED_ADMIN_EMAIL"), "seed an admin with this email")
	adminPassword := flag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "password for the seeded admin")
	flag.Parse()

	if *addr == "" {
		logger.Fatal("DB_ADDR is required")
	}

	db, err := sql.Open("postgres", *addr)
	if err != nil {
		logger.Fatalw("open database", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	applied, err := migrate(ctx, db)
	if err != nil {
		logger.Fatalw("migrate", "error", err)
	}
	logger.Infow("migrations done", "applied", applied)

	if *adminEmail != "" {
		created, err := seedAdmin(ctx, db, *adminEmail, *adminPassword)
		if err != nil {
			logger.Fatalw("seed admin", "error", err)
		}
		logger.Infow("admin seed", "email", *adminEmail, "created", created)
	}
}

func migrate(ctx context.Context, db *sql.DB) ([]string, error) {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    name       TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var applied []string
	for _, name := range names {
		ok, err := apply(ctx, db, name)
		if err != nil {
			return applied, fmt.Errorf("%s: %w", name, err)
		}
		if ok {
			applied = append(applied, name)
		}
	}
	return applied, nil
}

// apply runs one migration file in its own transaction unless it is
// already recorded.
func apply(ctx context.Context, db *sql.DB, name string) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name).Scan(&exists); err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	body, err := migrations.ReadFile(name)
	if err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func seedAdmin(ctx context.Context, db *sql.DB, email, password string) (bool, error) {
	if len(password) < 8 {
		return false, errors.New("admin password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `
INSERT INTO users (email, name, password, role, is_active, is_verified)
SELECT $1, 'Administrator', $2, 'admin', TRUE, TRUE
WHERE NOT EXISTS (SELECT 1 FROM users WHERE lower(email) = $1 AND deleted_at IS NULL)`,
		strings.ToLower(email), hash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}
