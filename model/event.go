package model

import "time"

// PatientRegisteredEvent is published after a patient row is created.
type PatientRegisteredEvent struct {
	PatientID    uint64    `json:"patient_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	HasPhoto     bool      `json:"has_photo"`
	RegisteredAt time.Time `json:"registered_at"`
}
