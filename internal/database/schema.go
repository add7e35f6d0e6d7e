package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Base schema. CREATE TABLE IF NOT EXISTS keeps EnsureSchema
// idempotent; column names and types are the wire contract with
// export tooling, do not rename casually.
const createUsersSQL = `
CREATE TABLE IF NOT EXISTS users (
	id INT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(255) UNIQUE NOT NULL,
	email VARCHAR(255),
	password_hash CHAR(64) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'reporter'
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const createTipsSQL = `
CREATE TABLE IF NOT EXISTS tips (
	id INT AUTO_INCREMENT PRIMARY KEY,
	tip_name VARCHAR(255),
	incident_type VARCHAR(255),
	location VARCHAR(255),
	description VARCHAR(500),
	urgency VARCHAR(50),
	created_by INT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	status VARCHAR(50) DEFAULT 'Pending',
	FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE SET NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// MigrationReport records the best-effort migration outcome. Probe
// and ALTER failures never fail EnsureSchema; they accumulate in
// ProbeErr so the caller can log them and tests can assert on them.
type MigrationReport struct {
	DescriptionNarrowed bool  // tips.description was narrowed to VARCHAR(500)
	NarrowingSkipped    bool  // rows over 500 chars exist, narrowing would truncate
	LegacyIDColumn      bool  // tips still carries the legacy tips_ID column
	ProbeErr            error // swallowed probe/alter failures, nil when clean
}

// EnsureSchema creates the users and tips tables if absent and then
// runs the best-effort migration probes. Table creation failure is
// the only fatal outcome; running twice is a no-op.
func EnsureSchema(ctx context.Context, db *sql.DB, dbName string) (MigrationReport, error) {
	if _, err := db.ExecContext(ctx, createUsersSQL); err != nil {
		return MigrationReport{}, fmt.Errorf("create users table: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTipsSQL); err != nil {
		return MigrationReport{}, fmt.Errorf("create tips table: %w", err)
	}
	var rep MigrationReport
	detectLegacyIDColumn(ctx, db, dbName, &rep)
	narrowDescription(ctx, db, dbName, &rep)
	return rep, nil
}

// detectLegacyIDColumn checks whether the tips table still carries
// the pre-rename tips_ID column. Detection only: no ALTER is driven
// off this, the result is reported for the operator to act on.
func detectLegacyIDColumn(ctx context.Context, db *sql.DB, dbName string, rep *MigrationReport) {
	rows, err := db.QueryContext(ctx,
		`SELECT COLUMN_NAME FROM INFORMATION_SCHEMA.COLUMNS
		 WHERE TABLE_SCHEMA=? AND TABLE_NAME='tips' AND COLUMN_NAME IN ('id','tips_ID')`,
		dbName)
	if err != nil {
		rep.ProbeErr = errors.Join(rep.ProbeErr, err)
		return
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rep.ProbeErr = errors.Join(rep.ProbeErr, err)
			return
		}
		if name == "tips_ID" {
			rep.LegacyIDColumn = true
		}
	}
	if err := rows.Err(); err != nil {
		rep.ProbeErr = errors.Join(rep.ProbeErr, err)
	}
}

// narrowDescription migrates a legacy unbounded tips.description
// column (TEXT and friends) down to VARCHAR(500), but only when no
// existing row would be truncated by the change.
func narrowDescription(ctx context.Context, db *sql.DB, dbName string, rep *MigrationReport) {
	var dataType string
	err := db.QueryRowContext(ctx,
		`SELECT DATA_TYPE FROM INFORMATION_SCHEMA.COLUMNS
		 WHERE TABLE_SCHEMA=? AND TABLE_NAME='tips' AND COLUMN_NAME='description'`,
		dbName).Scan(&dataType)
	if err != nil {
		rep.ProbeErr = errors.Join(rep.ProbeErr, err)
		return
	}
	if !strings.HasSuffix(strings.ToLower(dataType), "text") {
		return
	}

	var maxLen sql.NullInt64
	if err := db.QueryRowContext(ctx,
		"SELECT MAX(CHAR_LENGTH(description)) FROM tips").Scan(&maxLen); err != nil {
		rep.ProbeErr = errors.Join(rep.ProbeErr, err)
		return
	}
	if maxLen.Int64 > 500 {
		rep.NarrowingSkipped = true
		return
	}

	if _, err := db.ExecContext(ctx, "ALTER TABLE tips MODIFY description VARCHAR(500)"); err != nil {
		rep.ProbeErr = errors.Join(rep.ProbeErr, err)
		return
	}
	rep.DescriptionNarrowed = true
}
