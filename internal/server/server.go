// Package server exposes the analysis pipeline over HTTP: a minimal upload
// page, a multipart analyze endpoint, and JSON history endpoints. Chart
// rendering is a frontend concern; responses carry the chart-data bundles.
package server

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fernandopv429/data-gemini-visualizer/internal/dataset"
	"github.com/fernandopv429/data-gemini-visualizer/internal/pipeline"
	"github.com/fernandopv429/data-gemini-visualizer/internal/store"
)

// Server wires the pipeline and run store into HTTP handlers.
type Server struct {
	pipe  *pipeline.Pipeline
	runs  *store.Store
	maxRx int64
}

// New builds a Server. runs may be nil, disabling history endpoints.
func New(pipe *pipeline.Pipeline, runs *store.Store) *Server {
	return &Server{pipe: pipe, runs: runs, maxRx: dataset.MaxFileSize}
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /runs", s.handleListRuns)
	mux.HandleFunc("GET /runs/{id}", s.handleGetRun)
	return mux
}

// ListenAndServe starts the server on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("listening on http://%s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><title>dataviz</title></head>
<body>
<h1>dataviz</h1>
<p>Upload a CSV, TSV or XLSX file, or submit a public spreadsheet URL.</p>
<form action="/analyze" method="post" enctype="multipart/form-data">
  <input type="file" name="file">
  <input type="text" name="url" placeholder="https://...">
  <button type="submit">Analyze</button>
</form>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	if err := indexTemplate.Execute(w, nil); err != nil {
		log.Printf("template error: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxRx); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed form")
		return
	}

	t, err := s.loadTable(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := s.pipe.Run(r.Context(), t)

	if s.runs != nil {
		if id, err := s.runs.SaveRun(r.Context(), res); err != nil {
			log.Printf("save run: %v", err)
		} else {
			w.Header().Set("X-Run-Id", id)
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) loadTable(r *http.Request) (*dataset.Table, error) {
	opt := dataset.Options{}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		name := strings.ToLower(header.Filename)
		switch {
		case strings.HasSuffix(name, ".xlsx"):
			t, err := dataset.LoadXLSX(file, opt)
			if err != nil {
				return nil, err
			}
			t.Name = header.Filename
			return t, nil
		case strings.HasSuffix(name, ".csv"), strings.HasSuffix(name, ".tsv"):
			if strings.HasSuffix(name, ".tsv") {
				opt.Delimiter = '\t'
			}
			t, err := dataset.LoadCSV(file, opt)
			if err != nil {
				return nil, err
			}
			t.Name = header.Filename
			return t, nil
		default:
			return nil, fmt.Errorf("unsupported file type: %s", header.Filename)
		}
	}

	if u := strings.TrimSpace(r.FormValue("url")); u != "" {
		return dataset.FetchURL(r.Context(), u, opt)
	}
	return nil, fmt.Errorf("provide a file upload or a url field")
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusNotFound, "run history disabled")
		return
	}
	metas, err := s.runs.ListRuns(r.Context(), 50)
	if err != nil {
		log.Printf("list runs: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, metas)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusNotFound, "run history disabled")
		return
	}
	res, err := s.runs.GetRun(r.Context(), r.PathValue("id"))
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		log.Printf("get run: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
