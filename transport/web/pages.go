package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/patient-registration/application/browse"
	"github.com/muhammadheryan/patient-registration/application/registration"
	"github.com/muhammadheryan/patient-registration/constant"
	"github.com/muhammadheryan/patient-registration/model"
	"github.com/muhammadheryan/patient-registration/thirdparty/patientapi"
	"github.com/muhammadheryan/patient-registration/utils/logger"
	"go.uber.org/zap"
)

// MsgSubmitNetwork is shown when the API could not be reached during registration.
const MsgSubmitNetwork = "Network error. Please check your connection and try again."

const (
	maxFormMemory   = 8 << 20
	// multipart overhead allowed on top of the photo itself
	maxFormOverhead = 1 << 20
	maxFormBody     = constant.MaxPhotoSize + maxFormOverhead
)

type cardView struct {
	Title     string
	Subtitle  string
	Expanded  bool
	Detail    browse.Detail
	ToggleURL string
	ViewURL   string
}

type listPage struct {
	State      string
	Message    string
	Cards      []cardView
	Registered bool
	Viewer     *browse.ImageViewer
	CloseURL   string
}

// ListPage renders the patient list. Expanded cards come from repeated "open"
// parameters and the open document from "view".
func (s *WebHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	view := browse.NewListView()
	view.Load(ctx, s.API.ListPatients)
	if view.State() == browse.StateFailed {
		logger.Ctx(ctx).Warn("[ListPage] err list patients", zap.String("message", view.Message()))
	}

	open := parseIDs(query["open"])
	for _, id := range open {
		view.Expansion().Toggle(id)
	}

	viewer := &browse.ImageViewer{}
	viewID, _ := strconv.ParseUint(query.Get("view"), 10, 64)

	page := listPage{
		State:      view.State().String(),
		Message:    view.Message(),
		Registered: query.Get("registered") == "1",
		Viewer:     viewer,
		CloseURL:   listURL(open, 0),
	}
	for _, card := range view.Cards() {
		p := card.Patient()
		detail := card.Detail()
		if viewID != 0 && p.ID == viewID && detail.HasPhoto() {
			viewer.Open(detail.PhotoURL, detail.PhotoAlt)
		}
		page.Cards = append(page.Cards, cardView{
			Title:     card.Title(),
			Subtitle:  card.Subtitle(),
			Expanded:  card.Expanded(),
			Detail:    detail,
			ToggleURL: listURL(toggled(open, p.ID), 0),
			ViewURL:   listURL(open, p.ID),
		})
	}

	s.render(w, r, http.StatusOK, "list", page)
}

type formPage struct {
	Values        model.CreatePatientRequest
	FullNameError string
	EmailError    string
	PhoneError    string
	PhotoError    string
	SubmitError   string
	PickerOpen    bool
	Query         string
	Countries     []registration.Country
	CountryLabel  string
}

func newFormPage(form *registration.Form) formPage {
	errs := form.VisibleErrors()
	picker := form.Picker()
	values := form.Values()
	return formPage{
		Values:        values,
		FullNameError: errs[registration.FieldFullName],
		EmailError:    errs[registration.FieldEmail],
		PhoneError:    form.PhoneError(),
		PhotoError:    errs[registration.FieldDocumentPhoto],
		PickerOpen:    picker.IsOpen(),
		Query:         picker.Query(),
		Countries:     picker.Options(),
		CountryLabel:  picker.Label(values.PhoneCountryCode),
	}
}

// FormPage renders an empty registration form. "picker" opens the country
// list and "q" filters it; the other fields are carried back as entered.
func (s *WebHandler) FormPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	form := registration.NewForm()
	for _, field := range registration.Fields {
		if v := query.Get(string(field)); v != "" && field != registration.FieldDocumentPhoto {
			_ = form.SetText(field, v)
		}
	}
	if query.Get("picker") == "1" {
		form.Picker().Open()
	}
	form.Picker().Search(query.Get("q"))

	s.render(w, r, http.StatusOK, "form", newFormPage(form))
}

// SubmitForm validates the registration and forwards it to the API.
func (s *WebHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.ContentLength > maxFormBody {
		s.renderPhotoTooLarge(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.renderPhotoTooLarge(w, r)
			return
		}
		logger.Ctx(ctx).Warn("[SubmitForm] err parse form", zap.Error(err))
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if r.MultipartForm != nil {
		defer func() {
			_ = r.MultipartForm.RemoveAll()
		}()
	}

	form := registration.NewForm()
	for _, field := range registration.Fields {
		if field == registration.FieldDocumentPhoto {
			continue
		}
		_ = form.SetText(field, r.FormValue(string(field)))
	}
	photo, err := readUpload(r)
	if err != nil {
		logger.Ctx(ctx).Warn("[SubmitForm] err read upload", zap.Error(err))
	}
	_ = form.SetPhoto(photo)

	submitted, err := form.Submit(ctx, func(ctx context.Context, req model.CreatePatientRequest) error {
		_, err := s.API.CreatePatient(ctx, req)
		return err
	})
	form.Complete()

	if !submitted {
		s.render(w, r, http.StatusUnprocessableEntity, "form", newFormPage(form))
		return
	}
	if err != nil {
		page := newFormPage(form)
		page.SubmitError = MsgSubmitNetwork
		status := http.StatusBadGateway
		var apiErr *patientapi.APIError
		if errors.As(err, &apiErr) {
			page.SubmitError = apiErr.Message
			status = apiErr.Status
		} else {
			logger.Ctx(ctx).Error("[SubmitForm] err CreatePatient", zap.Error(err))
		}
		s.render(w, r, status, "form", page)
		return
	}

	http.Redirect(w, r, "/patients?registered=1", http.StatusSeeOther)
}

// renderPhotoTooLarge answers an oversize upload without reading the body.
// The other values cannot be recovered, so the form starts over.
func (s *WebHandler) renderPhotoTooLarge(w http.ResponseWriter, r *http.Request) {
	page := newFormPage(registration.NewForm())
	page.PhotoError = registration.MsgPhotoSize
	s.render(w, r, http.StatusRequestEntityTooLarge, "form", page)
}

// Photo proxies the document photo from the API.
func (s *WebHandler) Photo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid patient ID", http.StatusBadRequest)
		return
	}

	data, contentType, err := s.API.GetPhoto(ctx, id)
	if err != nil {
		var apiErr *patientapi.APIError
		if errors.As(err, &apiErr) {
			http.Error(w, apiErr.Message, apiErr.Status)
			return
		}
		logger.Ctx(ctx).Error("[Photo] err GetPhoto", zap.Error(err))
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	if contentType == "" {
		contentType = constant.PhotoContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", constant.PhotoCacheControl)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func (s *WebHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	buf := &bytes.Buffer{}
	if err := s.pages[name].Execute(buf, data); err != nil {
		logger.Ctx(r.Context()).Error("[render] err execute template", zap.String("page", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// readUpload returns nil when no file, or an empty one, was chosen. An
// oversize file is reported by size only and never read.
func readUpload(r *http.Request) (*model.DocumentPhoto, error) {
	file, header, err := r.FormFile(string(registration.FieldDocumentPhoto))
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if header.Size > constant.MaxPhotoSize {
		return &model.DocumentPhoto{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
		}, nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &model.DocumentPhoto{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	}, nil
}

func parseIDs(values []string) []uint64 {
	ids := make([]uint64, 0, len(values))
	seen := make(map[uint64]bool, len(values))
	for _, v := range values {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func toggled(ids []uint64, id uint64) []uint64 {
	out := make([]uint64, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

func listURL(open []uint64, view uint64) string {
	q := url.Values{}
	for _, id := range open {
		q.Add("open", strconv.FormatUint(id, 10))
	}
	if view != 0 {
		q.Set("view", strconv.FormatUint(view, 10))
	}
	if len(q) == 0 {
		return "/patients"
	}
	return "/patients?" + q.Encode()
}
