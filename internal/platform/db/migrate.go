package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the schema when it is missing. Statements are idempotent;
// a fresh deployment and a restart both pass through here.
func Migrate(conn *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tenants (
			tenant_id            CHAR(26)     NOT NULL,
			email                VARCHAR(255) NOT NULL,
			password_hash        VARCHAR(100) NOT NULL,
			pincode_hash         VARCHAR(100) NOT NULL,
			round_time_minutes   INT          NOT NULL,
			time_between_minutes INT          NOT NULL,
			is_disabled          TINYINT      NOT NULL DEFAULT 0,
			created_at           DATETIME(6)  NOT NULL,
			PRIMARY KEY (tenant_id),
			UNIQUE KEY uq_tenants_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			employee_id CHAR(26)     NOT NULL,
			tenant_id   CHAR(26)     NOT NULL,
			first_name  VARCHAR(100) NOT NULL,
			last_name   VARCHAR(100) NOT NULL,
			start_date  DATE         NOT NULL,
			created_at  DATETIME(6)  NOT NULL,
			PRIMARY KEY (employee_id),
			KEY idx_employees_tenant (tenant_id)
		)`,
		`CREATE TABLE IF NOT EXISTS clock_intervals (
			tenant_id   CHAR(26)    NOT NULL,
			month_key   CHAR(7)     NOT NULL,
			day_key     CHAR(10)    NOT NULL,
			employee_id CHAR(26)    NOT NULL,
			start_time  DATETIME(6) NOT NULL,
			end_time    DATETIME(6) NULL,
			PRIMARY KEY (tenant_id, day_key, employee_id),
			KEY idx_clock_intervals_month (tenant_id, month_key)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
