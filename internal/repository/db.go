package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            VARCHAR(64)  NOT NULL PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		name          VARCHAR(255) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME(6)  NOT NULL,
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS health_records (
		id              BIGINT      NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id         VARCHAR(64) NOT NULL,
		seq             INT         NOT NULL,
		recorded_at     DATETIME(6) NOT NULL,
		heart_rate      JSON        NULL,
		bp_systolic     JSON        NULL,
		bp_diastolic    JSON        NULL,
		temperature     JSON        NULL,
		activity_state  JSON        NULL,
		location        JSON        NULL,
		is_abnormal     JSON        NULL,
		abnormal        BOOLEAN     NOT NULL DEFAULT FALSE,
		analysis_result JSON        NULL,
		UNIQUE KEY uq_health_user_seq (user_id, seq),
		KEY idx_health_abnormal (abnormal, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS emergency_contacts (
		user_id  VARCHAR(64) NOT NULL,
		position INT         NOT NULL,
		contact  JSON        NOT NULL,
		PRIMARY KEY (user_id, position)
	)`,
}

// NewDB creates a new MySQL database connection pool with the given DSN and verifies it.
func NewDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Migrate creates the tables used by MySQLStore if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
