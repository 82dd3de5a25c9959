package patient

import "context"

const (
	createPatientsTableMySQL = "CREATE TABLE IF NOT EXISTS patients (" +
		"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY, " +
		"full_name VARCHAR(255) NOT NULL, " +
		"email VARCHAR(255) NOT NULL, " +
		"phone_country_code VARCHAR(8) NOT NULL, " +
		"phone_number VARCHAR(32) NOT NULL, " +
		"document_photo MEDIUMBLOB NULL, " +
		"created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP, " +
		"UNIQUE KEY uq_patients_email (email)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"

	createPatientsTablePostgres = `CREATE TABLE IF NOT EXISTS patients (
	id BIGSERIAL PRIMARY KEY,
	full_name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL CONSTRAINT uq_patients_email UNIQUE,
	phone_country_code VARCHAR(8) NOT NULL,
	phone_number VARCHAR(32) NOT NULL,
	document_photo BYTEA NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
)

// Migrate checks the connection and creates the patients table when missing.
func (s *SQL) Migrate(ctx context.Context) error {
	if err := s.conn.PingContext(ctx); err != nil {
		return err
	}

	ddl := createPatientsTableMySQL
	if s.isPostgres() {
		ddl = createPatientsTablePostgres
	}
	_, err := s.conn.ExecContext(ctx, ddl)
	return err
}
