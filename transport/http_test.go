package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/muhammadheryan/patient-registration/cmd/config"
	"github.com/muhammadheryan/patient-registration/constant"
	appmocks "github.com/muhammadheryan/patient-registration/mocks/application/patient"
	"github.com/muhammadheryan/patient-registration/model"
	"github.com/muhammadheryan/patient-registration/utils/barrier"
	cerr "github.com/muhammadheryan/patient-registration/utils/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func newTestHandler(t *testing.T, app *appmocks.PatientApp, ready *barrier.Barrier) http.Handler {
	t.Helper()
	cfg := &config.Config{Internal: config.InternalConfig{APIKey: "secret"}}
	return NewTransport(cfg, app, ready, prometheus.NewRegistry())
}

type formFile struct {
	name        string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, file *formFile) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="documentPhoto"; filename="`+file.name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"fullName":         "Ana Perez",
		"email":            "ana@gmail.com",
		"phoneCountryCode": "+598",
		"phoneNumber":      "99 123 456",
	}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRestHandler_CreatePatient(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		file       *formFile
		mockCall   func(app *appmocks.PatientApp)
		wantStatus int
		wantError  string
	}{
		{
			name:   "created with photo",
			fields: validFields(),
			file:   &formFile{name: "id.jpg", contentType: "image/jpeg", data: jpegBytes},
			mockCall: func(app *appmocks.PatientApp) {
				app.On("Register", mock.Anything, mock.MatchedBy(func(req *model.CreatePatientRequest) bool {
					return req.FullName == "Ana Perez" && req.PhoneNumber == "99 123 456" &&
						req.DocumentPhoto != nil && bytes.Equal(req.DocumentPhoto.Data, jpegBytes) &&
						req.DocumentPhoto.Filename == "id.jpg"
				})).Return(&model.PatientListItem{ID: 1, FullName: "Ana Perez", HasPhoto: true}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "empty file is treated as no photo",
			fields: validFields(),
			file:   &formFile{name: "id.jpg", contentType: "image/jpeg", data: []byte{}},
			mockCall: func(app *appmocks.PatientApp) {
				app.On("Register", mock.Anything, mock.MatchedBy(func(req *model.CreatePatientRequest) bool {
					return req.DocumentPhoto == nil
				})).Return(&model.PatientListItem{ID: 2, FullName: "Ana Perez"}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing field",
			fields:     map[string]string{"fullName": "Ana", "email": "ana@gmail.com", "phoneCountryCode": "+598"},
			mockCall:   func(app *appmocks.PatientApp) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required fields",
		},
		{
			name: "blank full name",
			fields: map[string]string{
				"fullName": "   ", "email": "ana@gmail.com", "phoneCountryCode": "+598", "phoneNumber": "123456",
			},
			mockCall:   func(app *appmocks.PatientApp) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required fields",
		},
		{
			name: "blank email and phone",
			fields: map[string]string{
				"fullName": "Ana", "email": " \t", "phoneCountryCode": "+598", "phoneNumber": "  ",
			},
			mockCall:   func(app *appmocks.PatientApp) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing required fields",
		},
		{
			name:   "surrounding spaces are trimmed",
			fields: map[string]string{"fullName": "  Ana Perez ", "email": " ana@gmail.com", "phoneCountryCode": "+598", "phoneNumber": "99 123 456 "},
			mockCall: func(app *appmocks.PatientApp) {
				app.On("Register", mock.Anything, mock.MatchedBy(func(req *model.CreatePatientRequest) bool {
					return req.FullName == "Ana Perez" && req.Email == "ana@gmail.com" && req.PhoneNumber == "99 123 456"
				})).Return(&model.PatientListItem{ID: 3, FullName: "Ana Perez"}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "invalid country code",
			fields: map[string]string{
				"fullName": "Ana", "email": "ana@gmail.com", "phoneCountryCode": "598", "phoneNumber": "123456",
			},
			mockCall:   func(app *appmocks.PatientApp) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid request",
		},
		{
			name:       "photo too large",
			fields:     validFields(),
			file:       &formFile{name: "big.jpg", contentType: "image/jpeg", data: make([]byte, constant.MaxPhotoSize+1)},
			mockCall:   func(app *appmocks.PatientApp) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Document photo must be smaller than 5MB",
		},
		{
			name:   "duplicate email",
			fields: validFields(),
			mockCall: func(app *appmocks.PatientApp) {
				app.On("Register", mock.Anything, mock.Anything).
					Return(nil, cerr.SetCustomError(constant.ErrEmailExists)).Once()
			},
			wantStatus: http.StatusConflict,
			wantError:  "A patient with this email already exists",
		},
		{
			name:   "unexpected error",
			fields: validFields(),
			mockCall: func(app *appmocks.PatientApp) {
				app.On("Register", mock.Anything, mock.Anything).
					Return(nil, errors.New("boom")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := appmocks.NewPatientApp(t)
			tt.mockCall(app)
			h := newTestHandler(t, app, nil)

			body, contentType := multipartBody(t, tt.fields, tt.file)
			req := httptest.NewRequest(http.MethodPost, "/patients", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				res := decodeError(t, rec)
				assert.False(t, res.Success)
				assert.Equal(t, tt.wantError, res.Error)
				return
			}

			var res model.CreatePatientResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
			assert.True(t, res.Success)
			assert.Equal(t, constant.MsgPatientRegistered, res.Message)
			require.NotNil(t, res.Patient)
		})
	}
}

func TestRestHandler_CreatePatient_NotMultipart(t *testing.T) {
	h := newTestHandler(t, appmocks.NewPatientApp(t), nil)

	req := httptest.NewRequest(http.MethodPost, "/patients", bytes.NewBufferString(`{"fullName":"Ana"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRestHandler_ListPatients(t *testing.T) {
	app := appmocks.NewPatientApp(t)
	app.On("List", mock.Anything).Return([]model.PatientListItem{
		{ID: 1, FullName: "Ana", HasPhoto: true},
		{ID: 2, FullName: "Bo", HasPhoto: false},
	}, nil).Once()
	h := newTestHandler(t, app, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["success"])
	patients := raw["patients"].([]any)
	require.Len(t, patients, 2)
	first := patients[0].(map[string]any)
	assert.Equal(t, true, first["hasPhoto"])
	assert.NotContains(t, first, "documentPhoto")
	assert.Equal(t, false, patients[1].(map[string]any)["hasPhoto"])
}

func TestRestHandler_ListPatients_Empty(t *testing.T) {
	app := appmocks.NewPatientApp(t)
	app.On("List", mock.Anything).Return(nil, nil).Once()
	h := newTestHandler(t, app, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"patients":[]}`, rec.Body.String())
}

func TestRestHandler_GetPatientPhoto(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		mockCall   func(app *appmocks.PatientApp)
		wantStatus int
		wantError  string
	}{
		{
			name: "photo bytes",
			path: "/patients/1/photo",
			mockCall: func(app *appmocks.PatientApp) {
				app.On("GetPhoto", mock.Anything, uint64(1)).
					Return(&model.PatientPhoto{PatientID: 1, ContentType: constant.PhotoContentType, Data: jpegBytes}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "non numeric id",
			path:       "/patients/abc/photo",
			mockCall:   func(app *appmocks.PatientApp) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid patient ID",
		},
		{
			name: "no photo",
			path: "/patients/2/photo",
			mockCall: func(app *appmocks.PatientApp) {
				app.On("GetPhoto", mock.Anything, uint64(2)).
					Return(nil, cerr.SetCustomError(constant.ErrPhotoNotFound)).Once()
			},
			wantStatus: http.StatusNotFound,
			wantError:  "Photo not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := appmocks.NewPatientApp(t)
			tt.mockCall(app)
			h := newTestHandler(t, app, nil)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
				return
			}
			assert.Equal(t, jpegBytes, rec.Body.Bytes())
			assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
			assert.Equal(t, "public, max-age=31536000", rec.Header().Get("Cache-Control"))
			assert.Equal(t, "11", rec.Header().Get("Content-Length"))
		})
	}
}

func TestReadyMiddleware(t *testing.T) {
	t.Run("setup failure answers 500 without reaching the app", func(t *testing.T) {
		ready := barrier.New(func(context.Context) error { return errors.New("db down") })
		h := newTestHandler(t, appmocks.NewPatientApp(t), ready)

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients", nil))
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "Internal server error", decodeError(t, rec).Error)
		}
	})

	t.Run("setup runs once before the first request", func(t *testing.T) {
		calls := 0
		ready := barrier.New(func(context.Context) error { calls++; return nil })
		app := appmocks.NewPatientApp(t)
		app.On("List", mock.Anything).Return([]model.PatientListItem{}, nil).Twice()
		h := newTestHandler(t, app, ready)

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients", nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
		assert.Equal(t, 1, calls)
	})
}

func TestInternalMetrics(t *testing.T) {
	h := newTestHandler(t, appmocks.NewPatientApp(t), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/internal/metrics", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/internal/metrics", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInternalMiddleware_EmptyKeyRejectsAll(t *testing.T) {
	h := InternalMiddleware("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/internal/metrics", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	var seen string
	h := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Context().Value(constant.RequestIDKey).(string)
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}
