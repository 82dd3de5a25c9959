package patient

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/patient-registration/model"
)

type SQL struct {
	conn *sqlx.DB
}

type PatientRepository interface {
	Create(ctx context.Context, data *model.PatientEntity) (*model.PatientEntity, error)
	List(ctx context.Context) ([]model.PatientListItem, error)
	GetPhoto(ctx context.Context, id uint64) ([]byte, error)
	Migrate(ctx context.Context) error
}

func NewPatientRepository(conn *sqlx.DB) PatientRepository {
	return &SQL{conn: conn}
}

const (
	insertPatientQuery = `INSERT INTO patients (full_name, email, phone_country_code, phone_number, document_photo, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	listPatientsQuery = `SELECT id, full_name, email, phone_country_code, phone_number,
	(document_photo IS NOT NULL AND LENGTH(document_photo) > 0) AS has_photo, created_at
FROM patients
ORDER BY id`

	getPatientPhotoQuery = `SELECT document_photo FROM patients WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.PatientEntity) (*model.PatientEntity, error) {
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	args := []any{data.FullName, data.Email, data.PhoneCountryCode, data.PhoneNumber, nullableBytes(data.DocumentPhoto), data.CreatedAt}

	var lastID uint64
	if s.isPostgres() {
		query := s.conn.Rebind(insertPatientQuery + " RETURNING id")
		if err := s.conn.QueryRowxContext(ctx, query, args...).Scan(&lastID); err != nil {
			return nil, classifyWriteError(err, data.Email)
		}
	} else {
		result, err := s.conn.ExecContext(ctx, insertPatientQuery, args...)
		if err != nil {
			return nil, classifyWriteError(err, data.Email)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, err
		}
		lastID = uint64(id)
	}

	data.ID = lastID
	return data, nil
}

func (s *SQL) List(ctx context.Context) ([]model.PatientListItem, error) {
	rows, err := s.conn.QueryxContext(ctx, listPatientsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PatientListItem, 0)
	for rows.Next() {
		var it model.PatientListItem
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetPhoto returns the stored photo bytes, or nil when the patient does not
// exist or has no photo.
func (s *SQL) GetPhoto(ctx context.Context, id uint64) ([]byte, error) {
	var photo []byte
	if err := s.conn.GetContext(ctx, &photo, s.conn.Rebind(getPatientPhotoQuery), id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(photo) == 0 {
		return nil, nil
	}
	return photo, nil
}

func (s *SQL) isPostgres() bool {
	return s.conn.DriverName() == "postgres"
}

func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
