package web

import (
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"padron/internal/logging"
	"padron/internal/padron"
)

type uploadPageData struct {
	User string
}

func (s *Server) handleUploadForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, "upload.html", uploadPageData{
		User: accountFrom(r.Context()).Email,
	})
}

func (s *Server) handleUploadPadron(w http.ResponseWriter, r *http.Request) {
	data, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := padron.Normalize(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid csv: %v", err))
		return
	}

	inserted, err := s.registry.IngestPadron(r.Context(), rows)
	if err != nil {
		logging.FromContext(r.Context()).Error("padron ingest", "error", err)
		writeError(w, http.StatusInternalServerError, "ingest failed")
		return
	}

	logging.FromContext(r.Context()).Info("padron upload",
		"upload_id", uuid.NewString(),
		"user", accountFrom(r.Context()).Email,
		"rows", len(rows),
		"inserted", inserted)
	writeJSON(w, map[string]any{"ok": true, "inserted": inserted})
}

func (s *Server) handleUploadAfiliados(w http.ResponseWriter, r *http.Request) {
	data, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	afs, err := padron.NormalizeAfiliados(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid csv: %v", err))
		return
	}

	inserted, err := s.registry.IngestAfiliados(r.Context(), afs)
	if err != nil {
		logging.FromContext(r.Context()).Error("afiliados ingest", "error", err)
		writeError(w, http.StatusInternalServerError, "ingest failed")
		return
	}

	logging.FromContext(r.Context()).Info("afiliados upload",
		"upload_id", uuid.NewString(),
		"user", accountFrom(r.Context()).Email,
		"rows", len(afs),
		"inserted", inserted)
	writeJSON(w, map[string]any{"ok": true, "inserted": inserted})
}

// readUpload reads the multipart "file" field, capped at the configured
// maximum upload size.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		return nil, fmt.Errorf("parsing upload: %w", err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	return data, nil
}
