package constant

const (
	// MaxPhotoSize is the largest accepted document photo, in bytes.
	MaxPhotoSize = 5 * 1024 * 1024

	PhotoContentType  = "image/jpeg"
	PhotoCacheControl = "public, max-age=31536000"

	DefaultCountryCode = "+598"

	MsgPatientRegistered = "Patient registered successfully"
)

type contextKey string

const RequestIDKey contextKey = "request_id"
