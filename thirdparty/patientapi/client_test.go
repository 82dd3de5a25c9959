package patientapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/muhammadheryan/patient-registration/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListPatients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/patients", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.PatientListResponse{
			Success:  true,
			Patients: []model.PatientListItem{{ID: 1, FullName: "Ana", HasPhoto: true}, {ID: 2, FullName: "Bo"}},
		})
	}))
	defer srv.Close()

	got, err := New(srv.URL+"/", time.Second).ListPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].HasPhoto)
	assert.False(t, got[1].HasPhoto)
}

func TestClient_ListPatients_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: "Internal server error", Code: "0001"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).ListPatients(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal server error", apiErr.Message)
	assert.Equal(t, "0001", apiErr.Code)
}

func TestClient_ListPatients_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).ListPatients(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClient_CreatePatient(t *testing.T) {
	photo := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Ana Perez", r.FormValue("fullName"))
		assert.Equal(t, "ana@gmail.com", r.FormValue("email"))
		assert.Equal(t, "+598", r.FormValue("phoneCountryCode"))
		assert.Equal(t, "99123456", r.FormValue("phoneNumber"))

		f, hdr, err := r.FormFile("documentPhoto")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, photo, data)
		assert.Equal(t, "id.jpg", hdr.Filename)
		assert.Equal(t, "image/jpeg", hdr.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.CreatePatientResponse{
			Success: true,
			Patient: &model.PatientListItem{ID: 7, FullName: "Ana Perez", HasPhoto: true},
			Message: "Patient registered successfully",
		})
	}))
	defer srv.Close()

	got, err := New(srv.URL, time.Second).CreatePatient(context.Background(), model.CreatePatientRequest{
		FullName:         "Ana Perez",
		Email:            "ana@gmail.com",
		PhoneCountryCode: "+598",
		PhoneNumber:      "99123456",
		DocumentPhoto:    &model.DocumentPhoto{Filename: "id.jpg", ContentType: "image/jpeg", Size: int64(len(photo)), Data: photo},
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.ID)
}

func TestClient_CreatePatient_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: "A patient with this email already exists", Code: "0006"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).CreatePatient(context.Background(), model.CreatePatientRequest{FullName: "Ana"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "A patient with this email already exists", apiErr.Error())
}

func TestClient_GetPhoto(t *testing.T) {
	photo := []byte{0xFF, 0xD8, 0xFF, 0x00}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/patients/3/photo":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(photo)
		default:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: "Photo not found"})
		}
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	data, contentType, err := c.GetPhoto(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, photo, data)
	assert.Equal(t, "image/jpeg", contentType)

	_, _, err = c.GetPhoto(context.Background(), 4)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Photo not found", apiErr.Message)
}

func TestDecodeError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).ListPatients(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Forbidden", apiErr.Message)
}
