package handlers

import (
	"bytes"
	"city-route-service/internal/ports"
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type indexPage struct {
	Cities         []string
	MapsBrowserKey string
}

// PageHandler renders the route form.
type PageHandler struct {
	Catalog        ports.CityCatalog
	MapsBrowserKey string
}

// Index handles GET / and lists the catalog cities in the form.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cities, err := h.Catalog.ListCities(r.Context())
	if err != nil {
		log.Printf("index page: list cities failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	data := indexPage{
		Cities:         make([]string, 0, len(cities)),
		MapsBrowserKey: h.MapsBrowserKey,
	}
	for _, c := range cities {
		data.Cities = append(data.Cities, c.Name)
	}

	// Render into a buffer so a template error never produces a half-written page.
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		log.Printf("index page: render failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Printf("index page loaded cities=%d", len(data.Cities))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
