package transport

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	patientapp "github.com/muhammadheryan/patient-registration/application/patient"
	"github.com/muhammadheryan/patient-registration/cmd/config"
	"github.com/muhammadheryan/patient-registration/constant"
	"github.com/muhammadheryan/patient-registration/model"
	"github.com/muhammadheryan/patient-registration/utils/barrier"
	cerr "github.com/muhammadheryan/patient-registration/utils/errors"
	"github.com/muhammadheryan/patient-registration/utils/logger"
	validatorx "github.com/muhammadheryan/patient-registration/utils/validator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const (
	// multipart overhead allowed on top of the photo itself
	maxFormOverhead = 1 << 20
	maxFormMemory   = 8 << 20
)

type RestHandler struct {
	PatientApp patientapp.PatientApp
}

// NewTransport builds the API router. Patient routes wait for ready before
// touching storage; metrics are served from gatherer behind the internal key.
func NewTransport(cfg *config.Config, PatientApp patientapp.PatientApp, ready *barrier.Barrier, gatherer prometheus.Gatherer) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		PatientApp: PatientApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// internal routes
	internal := mux.PathPrefix("/internal").Subrouter()
	internal.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	internal.Use(InternalMiddleware(cfg.Internal.APIKey))

	// patient routes
	patients := mux.PathPrefix("/patients").Subrouter()
	patients.HandleFunc("", rh.CreatePatient).Methods(http.MethodPost)
	patients.HandleFunc("", rh.ListPatients).Methods(http.MethodGet)
	patients.HandleFunc("/{id}/photo", rh.GetPatientPhoto).Methods(http.MethodGet)
	patients.Use(ReadyMiddleware(ready))

	// middleware
	mux.Use(LoggingMiddleware())

	return mux
}

// CreatePatient handler
// @Summary Register patient
// @Description Register a new patient with an optional JPEG identity document photo
// @Tags Patients
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string true "Full name"
// @Param email formData string true "Email"
// @Param phoneCountryCode formData string true "Phone country code, e.g. +598"
// @Param phoneNumber formData string true "Phone number"
// @Param documentPhoto formData file false "Document photo (JPEG, max 5MB)"
// @Success 201 {object} model.CreatePatientResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /patients [post]
func (s *RestHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, constant.MaxPhotoSize+maxFormOverhead)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, cerr.SetCustomError(constant.ErrPhotoTooLarge))
			return
		}
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	req := model.CreatePatientRequest{
		FullName:         strings.TrimSpace(r.FormValue("fullName")),
		Email:            strings.TrimSpace(r.FormValue("email")),
		PhoneCountryCode: strings.TrimSpace(r.FormValue("phoneCountryCode")),
		PhoneNumber:      strings.TrimSpace(r.FormValue("phoneNumber")),
	}
	if req.FullName == "" || req.Email == "" || req.PhoneCountryCode == "" || req.PhoneNumber == "" {
		writeError(w, cerr.SetCustomError(constant.ErrMissingFields))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	photo, err := readDocumentPhoto(r)
	if err != nil {
		writeError(w, err)
		return
	}
	req.DocumentPhoto = photo

	if s.PatientApp == nil {
		writeError(w, cerr.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.PatientApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.CreatePatientResponse{
		Success: true,
		Patient: res,
		Message: constant.MsgPatientRegistered,
	})
}

// ListPatients handler
// @Summary List patients
// @Description List every registered patient without photo bytes
// @Tags Patients
// @Produce json
// @Success 200 {object} model.PatientListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /patients [get]
func (s *RestHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	if s.PatientApp == nil {
		writeError(w, cerr.SetCustomError(constant.ErrInternal))
		return
	}

	res, err := s.PatientApp.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if res == nil {
		res = []model.PatientListItem{}
	}

	writeSuccess(w, http.StatusOK, model.PatientListResponse{
		Success:  true,
		Patients: res,
	})
}

// GetPatientPhoto handler
// @Summary Get document photo
// @Description Raw JPEG bytes of a patient's identity document
// @Tags Patients
// @Produce jpeg
// @Param id path int true "Patient ID"
// @Success 200 {file} binary
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /patients/{id}/photo [get]
func (s *RestHandler) GetPatientPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, cerr.SetCustomError(constant.ErrInvalidPatientID))
		return
	}

	if s.PatientApp == nil {
		writeError(w, cerr.SetCustomError(constant.ErrInternal))
		return
	}

	photo, err := s.PatientApp.GetPhoto(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", photo.ContentType)
	w.Header().Set("Cache-Control", constant.PhotoCacheControl)
	w.Header().Set("Content-Length", strconv.Itoa(len(photo.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(photo.Data); err != nil {
		logger.Ctx(ctx).Warn("[GetPatientPhoto] err write body", zap.Error(err))
	}
}

// readDocumentPhoto returns nil when no file, or an empty one, was sent.
func readDocumentPhoto(r *http.Request) (*model.DocumentPhoto, error) {
	file, header, err := r.FormFile("documentPhoto")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	defer file.Close()

	if header.Size > constant.MaxPhotoSize {
		return nil, cerr.SetCustomError(constant.ErrPhotoTooLarge)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Ctx(r.Context()).Error("[readDocumentPhoto] err read upload", zap.Error(err))
		return nil, cerr.SetCustomError(constant.ErrInvalidRequest)
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &model.DocumentPhoto{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
