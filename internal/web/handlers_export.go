package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/lawdir/internal/core"
)

// handleExport downloads the directory, honoring the same filters as the listing.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := exportFormat(r)
	f, key := parseFilter(r)

	// Buffer so a failed export can still answer with a JSON error.
	var buf bytes.Buffer
	n, err := s.service.Export(&buf, format, f, key)
	if err != nil {
		respondError(w, r, err)
		return
	}

	filename := fmt.Sprintf("lawyers_%s.%s", time.Now().Format("20060102_150405"), format)
	w.Header().Set("X-Record-Count", strconv.Itoa(n))
	writeAttachment(w, format, filename, buf.Bytes())
}

// handleTemplate downloads an empty import file with one sample row.
func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	format := exportFormat(r)

	var buf bytes.Buffer
	if err := s.service.Template(&buf, format); err != nil {
		respondError(w, r, err)
		return
	}
	writeAttachment(w, format, "lawyers_template."+format, buf.Bytes())
}

// exportFormat reads ?format=, defaulting to csv.
func exportFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	return core.FormatCSV
}

func writeAttachment(w http.ResponseWriter, format, filename string, body []byte) {
	w.Header().Set("Content-Type", core.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	_, _ = w.Write(body)
}
