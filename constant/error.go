package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrMissingFields
	ErrEmailExists
	ErrInvalidPatientID
	ErrPhotoNotFound
	ErrPhotoTooLarge
	ErrPhotoNotJPEG
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:          "success",
	ErrInternal:         "Internal server error",
	ErrNotFound:         "data not found",
	ErrInvalidRequest:   "invalid request",
	ErrUnauthorize:      "unauthorize request",
	ErrMissingFields:    "Missing required fields",
	ErrEmailExists:      "A patient with this email already exists",
	ErrInvalidPatientID: "Invalid patient ID",
	ErrPhotoNotFound:    "Photo not found",
	ErrPhotoTooLarge:    "Document photo must be smaller than 5MB",
	ErrPhotoNotJPEG:     "Document photo must be a .jpg file",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:          http.StatusOK,
	ErrInternal:         http.StatusInternalServerError,
	ErrNotFound:         http.StatusNotFound,
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrUnauthorize:      http.StatusUnauthorized,
	ErrMissingFields:    http.StatusBadRequest,
	ErrEmailExists:      http.StatusConflict,
	ErrInvalidPatientID: http.StatusBadRequest,
	ErrPhotoNotFound:    http.StatusNotFound,
	ErrPhotoTooLarge:    http.StatusBadRequest,
	ErrPhotoNotJPEG:     http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:          "0000",
	ErrInternal:         "0001",
	ErrNotFound:         "0002",
	ErrInvalidRequest:   "0003",
	ErrUnauthorize:      "0004",
	ErrMissingFields:    "0005",
	ErrEmailExists:      "0006",
	ErrInvalidPatientID: "0007",
	ErrPhotoNotFound:    "0008",
	ErrPhotoTooLarge:    "0009",
	ErrPhotoNotJPEG:     "0010",
}
