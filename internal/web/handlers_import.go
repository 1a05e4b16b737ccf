package web

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/JonMunkholm/lawdir/internal/core"
)

// errNoFile is returned when a multipart request has no "file" part.
var errNoFile = errors.New("no file provided")

// importFunc is one of the service's four import entry points.
type importFunc func(ctx context.Context, name string, r io.Reader) (*core.ImportResult, error)

// handleValidateImport checks a file without committing.
func (s *Server) handleValidateImport(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, s.service.ValidateFile, http.StatusOK)
}

// handleImport is the all-or-nothing import.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, s.service.ImportFile, http.StatusCreated)
}

// handlePreviewBulk shows what a bulk import would accept and skip.
func (s *Server) handlePreviewBulk(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, s.service.PreviewBatch, http.StatusOK)
}

// handleImportBulk commits the accepted rows of a file and reports the rest.
func (s *Server) handleImportBulk(w http.ResponseWriter, r *http.Request) {
	s.runImport(w, r, s.service.ImportBatch, http.StatusCreated)
}

func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.ImportStatus())
}

// maxMultipartMemory is how much of an upload is held in memory; the rest of
// the part spills to a temporary file removed after the request.
const maxMultipartMemory = 4 << 20

// multipartMemory bounds the in-memory share of an upload of at most maxSize bytes.
func multipartMemory(maxSize int64) int64 {
	return min(maxSize, maxMultipartMemory)
}

// runImport reads the uploaded file and hands it to fn. Up to
// maxMultipartMemory of the upload is kept in memory; larger files are read
// back from a temporary file.
func (s *Server) runImport(w http.ResponseWriter, r *http.Request, fn importFunc, okStatus int) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(multipartMemory(maxSize)); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondError(w, r, err)
			return
		}
		respondError(w, r, errNoFile)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, errNoFile)
		return
	}
	defer file.Close()

	res, err := fn(r.Context(), header.Filename, file)
	if err != nil {
		// Blocked single-shot imports still carry a result worth showing.
		var verrs core.ValidationErrors
		if errors.As(err, &verrs) && res != nil {
			respondErrorWith(w, r, err, res)
			return
		}
		respondError(w, r, err)
		return
	}

	status := okStatus
	if !res.Committed {
		status = http.StatusOK
	}
	writeJSONStatus(w, status, res)
}
