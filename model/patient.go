package model

import "time"

// PatientEntity represents the patients table entity
type PatientEntity struct {
	ID               uint64    `db:"id" json:"id"`
	FullName         string    `db:"full_name" json:"fullName"`
	Email            string    `db:"email" json:"email"`
	PhoneCountryCode string    `db:"phone_country_code" json:"phoneCountryCode"`
	PhoneNumber      string    `db:"phone_number" json:"phoneNumber"`
	DocumentPhoto    []byte    `db:"document_photo" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// PatientListItem is the list projection: the photo bytes are replaced by HasPhoto.
type PatientListItem struct {
	ID               uint64    `db:"id" json:"id"`
	FullName         string    `db:"full_name" json:"fullName"`
	Email            string    `db:"email" json:"email"`
	PhoneCountryCode string    `db:"phone_country_code" json:"phoneCountryCode"`
	PhoneNumber      string    `db:"phone_number" json:"phoneNumber"`
	HasPhoto         bool      `db:"has_photo" json:"hasPhoto"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

func (e *PatientEntity) ListItem() PatientListItem {
	return PatientListItem{
		ID:               e.ID,
		FullName:         e.FullName,
		Email:            e.Email,
		PhoneCountryCode: e.PhoneCountryCode,
		PhoneNumber:      e.PhoneNumber,
		HasPhoto:         len(e.DocumentPhoto) > 0,
		CreatedAt:        e.CreatedAt,
	}
}

// DocumentPhoto is an uploaded identity document image.
type DocumentPhoto struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// CreatePatientRequest for patient registration
type CreatePatientRequest struct {
	FullName         string         `json:"fullName" validate:"required,max=255"`
	Email            string         `json:"email" validate:"required,email,max=255"`
	PhoneCountryCode string         `json:"phoneCountryCode" validate:"required,dialcode"`
	PhoneNumber      string         `json:"phoneNumber" validate:"required,phonedigits"`
	DocumentPhoto    *DocumentPhoto `json:"-"`
}

type CreatePatientResponse struct {
	Success bool             `json:"success"`
	Patient *PatientListItem `json:"patient,omitempty"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type PatientListResponse struct {
	Success  bool              `json:"success"`
	Patients []PatientListItem `json:"patients"`
	Error    string            `json:"error,omitempty"`
}

// PatientPhoto is a stored document photo ready to be served.
type PatientPhoto struct {
	PatientID   uint64
	ContentType string
	Data        []byte
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}
