package web

import (
	"errors"
	"net/http"
	"strconv"

	"padron/internal/logging"
	"padron/internal/padron"
)

// recordView is the search projection of a registry record. The extras bag
// and internal timestamps are never exposed through the search surface.
type recordView struct {
	ID        int64  `json:"id"`
	DNI       string `json:"dni"`
	Nombre    string `json:"nombre,omitempty"`
	Apellido  string `json:"apellido,omitempty"`
	Domicilio string `json:"domicilio,omitempty"`
	Localidad string `json:"localidad,omitempty"`
	Provincia string `json:"provincia,omitempty"`
}

type afiliadoView struct {
	ID         int64  `json:"id"`
	Legajo     string `json:"legajo"`
	Nombres    string `json:"nombres,omitempty"`
	Apellidos  string `json:"apellidos,omitempty"`
	Delegacion string `json:"delegacion,omitempty"`
	Seccional  string `json:"seccional,omitempty"`
}

func toRecordViews(recs []padron.Record) []recordView {
	views := make([]recordView, len(recs))
	for i, r := range recs {
		views[i] = recordView{
			ID:        r.ID,
			DNI:       r.DNI,
			Nombre:    deref(r.Nombre),
			Apellido:  deref(r.Apellido),
			Domicilio: deref(r.Domicilio),
			Localidad: deref(r.Localidad),
			Provincia: deref(r.Provincia),
		}
	}
	return views
}

func toAfiliadoViews(afs []padron.Afiliado) []afiliadoView {
	views := make([]afiliadoView, len(afs))
	for i, a := range afs {
		views[i] = afiliadoView{
			ID:         a.ID,
			Legajo:     a.Legajo,
			Nombres:    a.Nombres,
			Apellidos:  a.Apellidos,
			Delegacion: a.Delegacion,
			Seccional:  a.Seccional,
		}
	}
	return views
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

type padronPageData struct {
	User    string
	Q       string
	Results []recordView
}

func (s *Server) handlePadronPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	recs, err := s.registry.SearchPadron(r.Context(), q)
	if err != nil {
		logging.FromContext(r.Context()).Error("padron search", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	renderPage(w, http.StatusOK, "padron.html", padronPageData{
		User:    accountFrom(r.Context()).Email,
		Q:       q,
		Results: toRecordViews(recs),
	})
}

type afiliadosPageData struct {
	User    string
	Q       string
	Limit   int
	Results []afiliadoView
}

func (s *Server) handleAfiliadosPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, err := searchLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	afs, err := s.registry.SearchAfiliados(r.Context(), q, limit)
	if err != nil {
		if errors.Is(err, padron.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.FromContext(r.Context()).Error("afiliados search", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	renderPage(w, http.StatusOK, "afiliados.html", afiliadosPageData{
		User:    accountFrom(r.Context()).Email,
		Q:       q,
		Limit:   limit,
		Results: toAfiliadoViews(afs),
	})
}

// handlePadronSearch serves the JSON mirror of the padron page.
func (s *Server) handlePadronSearch(w http.ResponseWriter, r *http.Request) {
	recs, err := s.registry.SearchPadron(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		logging.FromContext(r.Context()).Error("padron search", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, toRecordViews(recs))
}

func (s *Server) handleAfiliadosSearch(w http.ResponseWriter, r *http.Request) {
	limit, err := searchLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	afs, err := s.registry.SearchAfiliados(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		if errors.Is(err, padron.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logging.FromContext(r.Context()).Error("afiliados search", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, toAfiliadoViews(afs))
}

// searchLimit parses the optional limit query parameter. Range checks happen
// in the service.
func searchLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return padron.DefaultSearchLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("limit must be an integer")
	}
	return n, nil
}
