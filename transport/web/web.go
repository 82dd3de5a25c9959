// Package web serves the server-rendered registration form, patient list and
// document viewer. It reaches patient data only through the API client.
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/patient-registration/model"
	"github.com/muhammadheryan/patient-registration/transport"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PatientAPI is the subset of the API client the pages need.
type PatientAPI interface {
	ListPatients(ctx context.Context) ([]model.PatientListItem, error)
	CreatePatient(ctx context.Context, req model.CreatePatientRequest) (*model.PatientListItem, error)
	GetPhoto(ctx context.Context, id uint64) ([]byte, string, error)
}

type WebHandler struct {
	API   PatientAPI
	pages map[string]*template.Template
}

func NewTransport(api PatientAPI) http.Handler {
	mux := mux.NewRouter()

	wh := &WebHandler{
		API:   api,
		pages: parsePages(),
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	mux.Handle("/", http.RedirectHandler("/patients", http.StatusFound)).Methods(http.MethodGet)
	mux.HandleFunc("/patients", wh.ListPage).Methods(http.MethodGet)
	mux.HandleFunc("/patients/new", wh.FormPage).Methods(http.MethodGet)
	mux.HandleFunc("/patients/new", wh.SubmitForm).Methods(http.MethodPost)
	mux.HandleFunc("/patients/{id}/photo", wh.Photo).Methods(http.MethodGet)

	mux.Use(transport.LoggingMiddleware())

	return mux
}

func parsePages() map[string]*template.Template {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"list", "form"} {
		pages[name] = template.Must(template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return pages
}
